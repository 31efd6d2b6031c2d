package server

import (
	"net/http"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/config"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/crypto"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/handler"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/llm"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/middleware"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/repository"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/service"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/weather"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router    *gin.Engine
	db        *sqlx.DB
	cfg       *config.Config
	cipher    *crypto.Cipher
	suggester *llm.Suggester
	log       *logrus.Logger
	logger    *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, cipher *crypto.Cipher, suggester *llm.Suggester, log *logrus.Logger, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router:    router,
		db:        db,
		cfg:       cfg,
		cipher:    cipher,
		suggester: suggester,
		log:       log,
		logger:    logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	userRepo := repository.NewUserRepository(s.db, s.log)
	prefRepo := repository.NewPreferenceRepository(s.db, s.log)
	decisionRepo := repository.NewDecisionRepository(s.db, s.log)
	feedbackRepo := repository.NewFeedbackRepository(s.db, s.log)

	keyStore := service.NewKeyStore(userRepo, s.cipher)
	authService := service.NewAuthService(userRepo, s.cipher, s.logger)
	recommendationService := service.NewRecommendationService(userRepo, prefRepo, decisionRepo, keyStore, s.suggester, s.logger)
	feedbackService := service.NewFeedbackService(decisionRepo, feedbackRepo, prefRepo, s.logger)

	weatherClient := weather.NewClient(weather.Config{APIKey: s.cfg.WeatherAPIKey()}, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.log)
	profileHandler := handler.NewProfileHandler(authService, s.log)
	decisionHandler := handler.NewDecisionHandler(recommendationService, weatherClient, s.log)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, s.log)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Authenticated routes
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.AuthMiddleware(s.logger))
	{
		authRequired.POST("/auth/onboarding/complete", profileHandler.CompleteOnboarding)
		authRequired.GET("/auth/provider-settings", profileHandler.GetProviderSettings)
		authRequired.PUT("/auth/provider-settings", profileHandler.UpdateProviderSettings)

		authRequired.GET("/decisions/recommend", decisionHandler.Recommend)
		authRequired.GET("/decisions/history", decisionHandler.History)

		authRequired.POST("/feedback", feedbackHandler.Submit)
		authRequired.GET("/user/stats", feedbackHandler.Stats)
	}
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on port %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
