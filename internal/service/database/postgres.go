package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type PostgresService struct {
	db     *sql.DB
	logger *zap.Logger
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Database)
}

func NewPostgresService(cfg PostgresConfig, logger *zap.Logger) (*PostgresService, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(3)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
	)

	return NewPostgresServiceWithDB(db, logger), nil
}

// NewPostgresServiceWithDB wraps an open handle (tests pass a sqlmock DB).
func NewPostgresServiceWithDB(db *sql.DB, logger *zap.Logger) *PostgresService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresService{db: db, logger: logger}
}

const schema = `
CREATE TABLE IF NOT EXISTS mbti_recommendations (
	id          SERIAL PRIMARY KEY,
	mbti_type   VARCHAR(4)  NOT NULL,
	locale      VARCHAR(8)  NOT NULL,
	title       TEXT        NOT NULL,
	description TEXT        NOT NULL DEFAULT '',
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (mbti_type, locale)
);

CREATE TABLE IF NOT EXISTS attractions (
	id                SERIAL PRIMARY KEY,
	recommendation_id INTEGER NOT NULL REFERENCES mbti_recommendations(id) ON DELETE CASCADE,
	position          INTEGER NOT NULL,
	name              TEXT    NOT NULL,
	category          TEXT    NOT NULL,
	reason            TEXT    NOT NULL DEFAULT '',
	UNIQUE (recommendation_id, position)
);
`

// EnsureSchema creates the recommendation tables when missing.
func (ps *PostgresService) EnsureSchema(ctx context.Context) error {
	if _, err := ps.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	ps.logger.Info("PostgreSQL schema ready")
	return nil
}

func (ps *PostgresService) GetDB() *sql.DB {
	return ps.db
}

func (ps *PostgresService) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

func (ps *PostgresService) Ping(ctx context.Context) error {
	return ps.db.PingContext(ctx)
}
