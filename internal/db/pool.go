package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxRetries    = 5
	retryInterval = 2 * time.Second
)

// NewPool connects to Postgres with retries and makes sure the metrics
// schema exists. Uploads are bursty but small, so the pool stays modest.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 8
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= maxRetries; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr == nil {
				log.Println("database connected")
				if err := ensureSchema(ctx, pool); err != nil {
					pool.Close()
					return nil, fmt.Errorf("ensure schema: %w", err)
				}
				return pool, nil
			} else {
				pool.Close()
				err = pingErr
			}
		}

		log.Printf("database connection attempt %d/%d failed: %v", attempt, maxRetries, err)
		if attempt < maxRetries {
			time.Sleep(retryInterval)
		}
	}

	return nil, fmt.Errorf("database connection failed after %d attempts: %w", maxRetries, err)
}

// ensureSchema creates the channel metrics tables when they are absent.
// Channel names are unique per user, daily metrics unique per (channel,
// date); these constraints back the upsert paths in the repository.
func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS channels (
		id            BIGSERIAL PRIMARY KEY,
		user_id       VARCHAR(64) NOT NULL,
		channel_name  VARCHAR(128) NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, channel_name)
	);

	CREATE TABLE IF NOT EXISTS daily_metrics (
		channel_id          BIGINT NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
		date                DATE NOT NULL,
		views               DOUBLE PRECISION NOT NULL DEFAULT 0,
		watch_time_minutes  DOUBLE PRECISION NOT NULL DEFAULT 0,
		subs_net            INTEGER NOT NULL DEFAULT 0,
		revenue_usd         DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (channel_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_daily_metrics_date ON daily_metrics (date);
	CREATE INDEX IF NOT EXISTS idx_channels_user ON channels (user_id);`

	_, err := pool.Exec(ctx, schema)
	return err
}
