package database

import (
	"context"
	"fmt"
	"time"

	"go-onboarding-wizard/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPostgresConnection(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, err
	}

	// Fix for Supabase Transaction Mode (PgBouncer)
	// Prevents "prepared statement already exists" errors
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	// One wizard session per process; a handful of connections is plenty
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Log.Info("Database connection established successfully")
	return pool, nil
}

// schema creates the tables used by the postgres storage medium and
// directory. Statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS form_snapshots (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS managers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		department TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_managers_department ON managers (department)`,
	`CREATE TABLE IF NOT EXISTS department_skills (
		department TEXT NOT NULL,
		skill      TEXT NOT NULL,
		position   INT  NOT NULL DEFAULT 0,
		PRIMARY KEY (department, skill)
	)`,
}

// Migrate applies the schema
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
