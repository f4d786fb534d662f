package postgres

import (
	"context"
	"fmt"
)

// schemaStatements bootstrap the invoices table. Every statement is
// idempotent so it is safe to run on each start.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS invoices (
		id         BIGSERIAL PRIMARY KEY,
		customer   VARCHAR(255) NOT NULL CHECK (char_length(customer) >= 1),
		amount     NUMERIC(10, 2) NOT NULL CHECK (amount > 0),
		status     VARCHAR(50) NOT NULL DEFAULT 'pending'
		           CHECK (status IN ('pending', 'paid', 'cancelled', 'overdue')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (created_at <= updated_at)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_created_at_id ON invoices (created_at DESC, id DESC)`,
}

// EnsureSchema creates the tables the service needs when they are missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed creating schema resources: %w", err)
		}
	}
	db.logger.Info("database schema is up to date")
	return nil
}
