package repository

import (
	"context"

	"mini-shop/internal/model"

	"github.com/shopspring/decimal"
)

// CartRepository defines the interface for cart line persistence.
type CartRepository interface {
	// List returns all lines, most recently added first.
	List(ctx context.Context) ([]model.CartLine, error)

	// GetByProductID returns the line for a product, or nil if there is none.
	GetByProductID(ctx context.Context, productID string) (*model.CartLine, error)

	// AddOrIncrement inserts the line with quantity 1, or increments the
	// quantity of the existing line for the same product, in one statement.
	AddOrIncrement(ctx context.Context, line model.CartLine) (*model.CartLine, error)

	// UpdateQuantity sets the quantity of an existing line.
	// Returns false if no line exists for the product.
	UpdateQuantity(ctx context.Context, productID string, quantity int) (bool, error)

	// Delete removes the line for a product. Returns false if there was none.
	Delete(ctx context.Context, productID string) (bool, error)

	// Clear removes every line and returns the number removed.
	Clear(ctx context.Context) (int64, error)

	// Count returns the number of lines.
	Count(ctx context.Context) (int, error)

	// TotalPrice returns the sum of unit price times quantity, zero when empty.
	TotalPrice(ctx context.Context) (decimal.Decimal, error)
}

// FavoriteRepository defines the interface for favourite persistence.
type FavoriteRepository interface {
	// List returns all favourites, most recently added first.
	List(ctx context.Context) ([]model.FavoriteEntry, error)

	// IDs returns the product IDs of all favourites.
	IDs(ctx context.Context) ([]string, error)

	// Exists reports whether the product is a favourite.
	Exists(ctx context.Context, productID string) (bool, error)

	// Toggle removes the favourite if present, otherwise inserts the entry,
	// within one transaction. Returns the resulting favourite state.
	Toggle(ctx context.Context, entry model.FavoriteEntry) (bool, error)

	// Clear removes every favourite and returns the number removed.
	Clear(ctx context.Context) (int64, error)
}
