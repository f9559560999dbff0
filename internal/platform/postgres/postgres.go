// Package postgres opens the service database and applies its schema.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"phonereg/internal/platform/config"
)

// ErrNotReady is returned when every connection attempt failed.
var ErrNotReady = errors.New("postgres not ready")

// Open connects to Postgres, retrying while the database starts up. Each
// failed attempt is logged with the number of attempts left.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	var lastErr error
	for attempt := 1; attempt <= cfg.RetryAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		lastErr = db.PingContext(pingCtx)
		cancel()
		if lastErr == nil {
			logger.InfoContext(ctx, "database connected", "attempt", attempt)
			return db, nil
		}

		left := cfg.RetryAttempts - attempt
		logger.WarnContext(ctx, "waiting for database",
			"retries_left", left,
			"error", lastErr,
		)
		if left == 0 {
			break
		}

		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, errors.Join(ErrNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	_ = db.Close()
	return nil, errors.Join(ErrNotReady, lastErr)
}
