package main

import (
	"go.uber.org/zap"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/anthropic"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/config"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/crypto"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/groq"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/llm"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/openrouter"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/repository"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/server"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logrus.New()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection
	var db *sqlx.DB
	switch cfg.Database.Type {
	case "sqlite":
		db, err = repository.NewSQLiteDB(cfg.Database.Path, logger)
		if err != nil {
			logger.Fatal("Failed to open sqlite database", zap.Error(err))
		}
	default:
		db, err = repository.NewPostgresDB(cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		repository.MigrateDB(db, logger)
	}
	defer db.Close()

	// Cipher for API keys at rest
	cipher, err := crypto.NewCipherFromEnv()
	if err != nil {
		logger.Fatal("Failed to initialize cipher", zap.Error(err))
	}
	logger.Info("Cipher initialized successfully")

	// AI provider clients
	timeout := cfg.ProviderTimeout()
	suggester := llm.NewSuggester(
		openrouter.NewClient(openrouter.Config{
			ModelName: cfg.Providers.OpenRouter.Model,
			AppURL:    cfg.AppURL,
			Timeout:   timeout,
		}, logger),
		groq.NewClient(groq.Config{
			ModelName: cfg.Providers.Groq.Model,
			Timeout:   timeout,
		}, logger),
		anthropic.NewClient(anthropic.Config{
			ModelName: cfg.Providers.Anthropic.Model,
			Timeout:   timeout,
		}, logger),
	)

	srv := server.NewServer(db, cfg, cipher, suggester, log, logger)
	srv.Run(cfg.Server.Port)
}
