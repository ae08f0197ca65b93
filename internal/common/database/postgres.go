package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"premium-estimator/internal/common/config"
)

// quotesSchema is applied at startup. The table holds request outcomes only;
// health assessments are never written.
const quotesSchema = `
CREATE TABLE IF NOT EXISTS quotes (
	id             UUID PRIMARY KEY,
	request_id     TEXT NOT NULL,
	insurance_plan TEXT NOT NULL,
	region         TEXT NOT NULL,
	premium        NUMERIC(14, 2),
	status         TEXT NOT NULL,
	error_message  TEXT,
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS quotes_request_id_idx ON quotes (request_id);
`

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens (lazily) a PostgreSQL pool.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// EnsureSchema creates the quotes table if it does not exist.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, quotesSchema); err != nil {
		return fmt.Errorf("apply quotes schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
