package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// SchemaVersion is bumped on every change to the table definitions below.
// A database carrying any other version is wiped and recreated.
const SchemaVersion = 2

const dropSchema = `
	DROP TABLE IF EXISTS cart_items;
	DROP TABLE IF EXISTS favorites;
`

const createSchema = `
	CREATE TABLE cart_items (
		id BIGSERIAL PRIMARY KEY,
		product_id TEXT NOT NULL UNIQUE,
		product_name TEXT NOT NULL,
		product_image TEXT NOT NULL DEFAULT '',
		unit_price NUMERIC NOT NULL CHECK (unit_price >= 0),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		added_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX idx_cart_items_added_at ON cart_items(added_at DESC);

	CREATE TABLE favorites (
		product_id TEXT PRIMARY KEY,
		product_name TEXT NOT NULL,
		product_image TEXT NOT NULL DEFAULT '',
		price NUMERIC NOT NULL CHECK (price >= 0),
		description TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		brand TEXT NOT NULL DEFAULT '',
		added_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX idx_favorites_added_at ON favorites(added_at DESC);
`

// Migrate brings the schema to SchemaVersion. There is no data-preserving
// path: a version mismatch drops both tables.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Serialises concurrent replicas starting at the same time.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(727274)`); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}

	if _, err := tx.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	current, err := currentVersion(ctx, tx)
	if err != nil {
		return err
	}

	if current == SchemaVersion {
		logger.Debug().Int("version", current).Msg("database schema is up to date")
		return tx.Commit(ctx)
	}

	logger.Warn().
		Int("from", current).
		Int("to", SchemaVersion).
		Msg("schema version mismatch, recreating tables")

	if _, err := tx.Exec(ctx, dropSchema); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	if _, err := tx.Exec(ctx, createSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM schema_version`); err != nil {
		return fmt.Errorf("failed to reset schema version: %w", err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_version (version) VALUES ($1)`, SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	logger.Info().Int("version", SchemaVersion).Msg("database schema created")

	return nil
}

// currentVersion returns 0 for a database that was never migrated.
func currentVersion(ctx context.Context, tx pgx.Tx) (int, error) {
	var version int
	err := tx.QueryRow(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
