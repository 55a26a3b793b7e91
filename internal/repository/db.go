// Package repository persists rate sheets in PostgreSQL so the service can
// start from the last stored history when the upstream is unavailable.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ratehistory/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver registration
)

// minOpenConns keeps one connection free for readiness pings and fallback
// reads while SaveDocument holds another for the whole bulk upsert.
const minOpenConns = 2

// NewPostgresDB opens the sheet store and verifies it is reachable.
func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, err
	}
	open, idle := poolSize(cfg.MaxOpenConns, cfg.MaxIdleConns)
	db.SetMaxOpenConns(open)
	db.SetMaxIdleConns(idle)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeSec) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to connect to sheet store: %w", err)
	}
	return db, nil
}

// poolSize raises the configured limits to minOpenConns and caps idle
// connections at the open limit.
func poolSize(maxOpen, maxIdle int) (open, idle int) {
	open = max(maxOpen, minOpenConns)
	idle = min(max(maxIdle, 1), open)
	return open, idle
}
