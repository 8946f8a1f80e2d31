package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"ise-marketing/propdesk/internal/logging"
)

// connectPostgres opens the sqlx pool, retrying while the database comes up.
func connectPostgres(ctx context.Context, dsn string, retries int) (*sqlx.DB, error) {
	if retries <= 0 {
		retries = 10
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		logging.Warn("Postgres not ready, retrying", "attempt", i+1, "error", err.Error())

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect to postgres: %w", ctx.Err())
		case <-time.After(500 * time.Millisecond):
		}
	}
	return nil, fmt.Errorf("connect to postgres after %d attempts: %w", retries, lastErr)
}
