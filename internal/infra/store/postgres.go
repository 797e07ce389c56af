package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

func PingCtx(db *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return db.PingContext(ctx)
}

// EnsureSchema creates the tokens table on startup. This is the only
// migration the service has; a failure here is fatal to the process.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tokens (
			id               BIGSERIAL PRIMARY KEY,
			external_id      TEXT NOT NULL UNIQUE,
			address          TEXT,
			name             TEXT NOT NULL DEFAULT '',
			symbol           TEXT NOT NULL DEFAULT '',
			image            TEXT,
			category         TEXT NOT NULL,
			market_cap       DOUBLE PRECISION NOT NULL DEFAULT 0,
			volume_24h       DOUBLE PRECISION NOT NULL DEFAULT 0,
			price            DOUBLE PRECISION NOT NULL DEFAULT 0,
			price_change_24h DOUBLE PRECISION NOT NULL DEFAULT 0,
			twitter          TEXT,
			telegram         TEXT,
			website          TEXT,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tokens_category ON tokens (category)`,
		`CREATE INDEX IF NOT EXISTS idx_tokens_market_cap ON tokens (market_cap DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_tokens_missing_social ON tokens (market_cap DESC) WHERE twitter IS NULL`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
