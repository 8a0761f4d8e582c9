package repository

import (
	"context"
	"fmt"

	"mini-shop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// favoriteRepository implements the FavoriteRepository interface using PostgreSQL.
type favoriteRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewFavoriteRepository creates a new PostgreSQL-backed favourite repository.
func NewFavoriteRepository(pool *pgxpool.Pool, logger zerolog.Logger) FavoriteRepository {
	return &favoriteRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "favorite").Logger(),
	}
}

func (r *favoriteRepository) List(ctx context.Context) ([]model.FavoriteEntry, error) {
	query := `
		SELECT product_id, product_name, product_image, price, description, model, brand, added_at
		FROM favorites
		ORDER BY added_at DESC, product_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query favorites")
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.FavoriteEntry])
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan favorites")
		return nil, fmt.Errorf("failed to scan favorites: %w", err)
	}

	return entries, nil
}

func (r *favoriteRepository) IDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT product_id FROM favorites ORDER BY added_at DESC, product_id`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query favorite ids")
		return nil, fmt.Errorf("failed to query favorite ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan favorite ids")
		return nil, fmt.Errorf("failed to scan favorite ids: %w", err)
	}

	return ids, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, productID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE product_id = $1)`,
		productID,
	).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to check favorite")
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	return exists, nil
}

func (r *favoriteRepository) Toggle(ctx context.Context, entry model.FavoriteEntry) (favorited bool, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	tag, err := tx.Exec(ctx, `DELETE FROM favorites WHERE product_id = $1`, entry.ProductID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", entry.ProductID).Msg("failed to delete favorite")
		return false, fmt.Errorf("failed to delete favorite: %w", err)
	}

	favorited = tag.RowsAffected() == 0
	if favorited {
		_, err = tx.Exec(ctx, `
			INSERT INTO favorites (product_id, product_name, product_image, price, description, model, brand, added_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (product_id) DO NOTHING
		`,
			entry.ProductID,
			entry.ProductName,
			entry.ProductImage,
			entry.Price,
			entry.Description,
			entry.Model,
			entry.Brand,
			entry.AddedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Str("product_id", entry.ProductID).Msg("failed to insert favorite")
			return false, fmt.Errorf("failed to insert favorite: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("product_id", entry.ProductID).Msg("failed to commit transaction")
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	r.logger.Debug().
		Str("product_id", entry.ProductID).
		Bool("favorite", favorited).
		Msg("favorite toggled")

	return favorited, nil
}

func (r *favoriteRepository) Clear(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM favorites`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to clear favorites")
		return 0, fmt.Errorf("failed to clear favorites: %w", err)
	}

	return tag.RowsAffected(), nil
}
