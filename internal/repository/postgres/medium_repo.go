package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-onboarding-wizard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLSTATE codes that mean the server has no room for the write
const (
	sqlStateDiskFull    = "53100"
	sqlStateOutOfMemory = "53200"
)

type mediumRepo struct {
	db *pgxpool.Pool
}

// NewMediumRepository stores snapshots in the form_snapshots table
func NewMediumRepository(db *pgxpool.Pool) domain.StorageMedium {
	return &mediumRepo{db: db}
}

func (r *mediumRepo) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return r.db.Ping(ctx) == nil
}

func (r *mediumRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM form_snapshots WHERE key = $1`

	var value string
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get snapshot %s: %w", key, err)
	}
	return value, true, nil
}

func (r *mediumRepo) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO form_snapshots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == sqlStateDiskFull || pgErr.Code == sqlStateOutOfMemory) {
			return fmt.Errorf("failed to upsert snapshot %s: %w", key, domain.ErrQuotaExceeded)
		}
		return fmt.Errorf("failed to upsert snapshot %s: %w", key, err)
	}
	return nil
}

func (r *mediumRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM form_snapshots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", key, err)
	}
	return nil
}

func (r *mediumRepo) Keys(ctx context.Context, prefix string) ([]string, error) {
	// starts_with avoids LIKE wildcards in the prefix (form_data_ contains '_')
	query := `SELECT key FROM form_snapshots WHERE starts_with(key, $1) ORDER BY key ASC`

	rows, err := r.db.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot key: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	return keys, nil
}
