package repository

import (
	"context"
	"errors"
	"fmt"

	"mini-shop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const cartColumns = `id, product_id, product_name, product_image, unit_price, quantity, added_at`

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

func (r *cartRepository) List(ctx context.Context) ([]model.CartLine, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items ORDER BY added_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query cart lines")
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}

	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.CartLine])
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan cart lines")
		return nil, fmt.Errorf("failed to scan cart lines: %w", err)
	}

	return lines, nil
}

func (r *cartRepository) GetByProductID(ctx context.Context, productID string) (*model.CartLine, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items WHERE product_id = $1`

	line, err := scanCartLine(r.pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", productID).Msg("cart line not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query cart line")
		return nil, fmt.Errorf("failed to query cart line: %w", err)
	}

	return line, nil
}

func (r *cartRepository) AddOrIncrement(ctx context.Context, line model.CartLine) (*model.CartLine, error) {
	query := `
		INSERT INTO cart_items (product_id, product_name, product_image, unit_price, quantity, added_at)
		VALUES ($1, $2, $3, $4, 1, $5)
		ON CONFLICT (product_id) DO UPDATE SET quantity = cart_items.quantity + 1
		RETURNING ` + cartColumns

	saved, err := scanCartLine(r.pool.QueryRow(ctx, query,
		line.ProductID,
		line.ProductName,
		line.ProductImage,
		line.UnitPrice,
		line.AddedAt,
	))
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", line.ProductID).Msg("failed to add cart line")
		return nil, fmt.Errorf("failed to add cart line: %w", err)
	}

	r.logger.Debug().
		Str("product_id", saved.ProductID).
		Int("quantity", saved.Quantity).
		Msg("cart line saved")

	return saved, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, productID string, quantity int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = $2 WHERE product_id = $1`,
		productID, quantity,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", productID).
			Int("quantity", quantity).
			Msg("failed to update cart line quantity")
		return false, fmt.Errorf("failed to update cart line quantity: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) Delete(ctx context.Context, productID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE product_id = $1`, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to delete cart line")
		return false, fmt.Errorf("failed to delete cart line: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) Clear(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to clear cart")
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *cartRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM cart_items`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count cart lines")
		return 0, fmt.Errorf("failed to count cart lines: %w", err)
	}

	return count, nil
}

func (r *cartRepository) TotalPrice(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(unit_price * quantity), 0) FROM cart_items`,
	).Scan(&total)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to sum cart total")
		return decimal.Zero, fmt.Errorf("failed to sum cart total: %w", err)
	}

	return total, nil
}

func scanCartLine(row pgx.Row) (*model.CartLine, error) {
	var l model.CartLine
	err := row.Scan(
		&l.ID,
		&l.ProductID,
		&l.ProductName,
		&l.ProductImage,
		&l.UnitPrice,
		&l.Quantity,
		&l.AddedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
