package repository

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // Required for file source
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver for local/dev deployments
)

// NewPostgresDB establishes a new connection to the PostgreSQL database.
func NewPostgresDB(dataSourceName string, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Successfully connected to the database!")
	return db, nil
}

// NewSQLiteDB opens (and creates if needed) a SQLite database and applies
// the schema directly. Used for local single-binary deployments and tests.
func NewSQLiteDB(path string, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	logger.Info("SQLite database initialized", zap.String("path", path))
	return db, nil
}

// MigrateDB runs database migrations against PostgreSQL.
func MigrateDB(db *sqlx.DB, logger *zap.Logger) {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		logger.Fatal("Couldn't get database instance for running migrations", zap.Error(err))
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "decision_fatigue_reducer", driver)
	if err != nil {
		logger.Fatal("Couldn't create migrate instance", zap.Error(err))
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Couldn't run database migration", zap.Error(err))
	}

	logger.Info("Database migration was run successfully")
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	preferred_provider TEXT NOT NULL DEFAULT 'openrouter',
	onboarded BOOLEAN NOT NULL DEFAULT 0,
	profile TEXT,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS api_keys (
	user_id TEXT NOT NULL,
	provider TEXT NOT NULL,
	encrypted_key TEXT NOT NULL,
	PRIMARY KEY (user_id, provider)
);

CREATE TABLE IF NOT EXISTS preferences (
	user_id TEXT NOT NULL,
	type TEXT NOT NULL,
	option TEXT NOT NULL,
	score REAL NOT NULL DEFAULT 0,
	UNIQUE (user_id, type, option)
);

CREATE TABLE IF NOT EXISTS decisions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	type TEXT NOT NULL,
	question TEXT NOT NULL,
	weather TEXT,
	time_of_day TEXT,
	location TEXT,
	options TEXT NOT NULL,
	ai_suggestion TEXT,
	provider_used TEXT NOT NULL,
	confidence REAL NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decisions_user_created ON decisions(user_id, created_at);

CREATE TABLE IF NOT EXISTS feedback (
	id TEXT PRIMARY KEY,
	decision_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	type TEXT NOT NULL,
	chosen_option TEXT NOT NULL,
	rating INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feedback_user ON feedback(user_id);
CREATE INDEX IF NOT EXISTS idx_feedback_decision ON feedback(decision_id);
`
