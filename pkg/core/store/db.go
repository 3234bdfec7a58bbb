// Package store persists produced quotes for the upstream case-management
// workflow. The calculation core never touches it; handlers call in after
// the engine has finished.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	mu   sync.Mutex
	pool *pgxpool.Pool
)

// InitDB opens the shared connection pool from the configured database URL.
// Repeated calls after a successful open are no-ops; a failed open may be
// retried.
func InitDB(ctx context.Context, databaseURL string) error {
	mu.Lock()
	defer mu.Unlock()

	if pool != nil {
		return nil
	}
	if databaseURL == "" {
		return fmt.Errorf("database URL not configured")
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("parse database config: %w", err)
	}

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open database pool: %w", err)
	}
	pool = p
	return nil
}

// GetPool returns the shared pool, nil until InitDB succeeds.
func GetPool() *pgxpool.Pool {
	mu.Lock()
	defer mu.Unlock()
	return pool
}

// Close closes the shared pool.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if pool != nil {
		pool.Close()
		pool = nil
	}
}
