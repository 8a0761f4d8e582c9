package service

import (
	"context"

	"mini-shop/internal/live"
	"mini-shop/internal/model"

	"github.com/shopspring/decimal"
)

// ProductCatalog is the product catalogue the services read from.
type ProductCatalog interface {
	// Products fetches the full product list.
	Products(ctx context.Context) ([]model.Product, error)

	// ProductByID returns a product, or model.ErrProductNotFound.
	ProductByID(ctx context.Context, id string) (model.Product, error)
}

// CatalogService defines product browsing operations.
type CatalogService interface {
	// Products returns the catalogue filtered by searchText and filter.
	Products(ctx context.Context, searchText string, filter model.Filter) ([]model.Product, error)

	// ProductByID retrieves a single product by ID.
	ProductByID(ctx context.Context, id string) (*model.Product, error)

	// FilterOptions returns the brands and models available for filtering.
	FilterOptions(ctx context.Context) (model.FilterOptions, error)
}

// CartService defines operations on the persistent cart.
type CartService interface {
	// AddToCart adds one unit of product, creating the line if needed.
	AddToCart(ctx context.Context, product model.Product) (*model.CartLine, error)

	// UpdateQuantity sets the quantity of a line. A quantity of zero or
	// less removes the line.
	UpdateQuantity(ctx context.Context, productID string, quantity int) error

	// IncreaseQuantity adds one unit to the line.
	IncreaseQuantity(ctx context.Context, line model.CartLine) error

	// DecreaseQuantity removes one unit, removing the line at quantity 1.
	DecreaseQuantity(ctx context.Context, line model.CartLine) error

	// IncreaseItem adds one unit to the current line of productID.
	// Returns model.ErrCartLineNotFound if there is no line.
	IncreaseItem(ctx context.Context, productID string) error

	// DecreaseItem removes one unit from the current line of productID,
	// removing the line at quantity 1.
	// Returns model.ErrCartLineNotFound if there is no line.
	DecreaseItem(ctx context.Context, productID string) error

	// RemoveFromCart removes the line for a product.
	RemoveFromCart(ctx context.Context, productID string) error

	// ClearCart removes every line.
	ClearCart(ctx context.Context) error

	// IsInCart reports whether the product has a line.
	IsInCart(ctx context.Context, productID string) (bool, error)

	// Line returns the line for a product, or nil if there is none.
	Line(ctx context.Context, productID string) (*model.CartLine, error)

	// Items returns all lines, most recently added first.
	Items(ctx context.Context) ([]model.CartLine, error)

	// Summary returns the line count and total price.
	Summary(ctx context.Context) (model.CartSummary, error)

	// Snapshot returns lines and summary together.
	Snapshot(ctx context.Context) (model.CartSnapshot, error)

	// WatchItems streams the lines on every cart change.
	WatchItems(ctx context.Context) *live.Feed[[]model.CartLine]

	// WatchItemCount streams the line count on every cart change.
	WatchItemCount(ctx context.Context) *live.Feed[int]

	// WatchTotalPrice streams the total price on every cart change.
	WatchTotalPrice(ctx context.Context) *live.Feed[decimal.Decimal]

	// WatchCart streams the full snapshot on every cart change.
	WatchCart(ctx context.Context) *live.Feed[model.CartSnapshot]

	// CompleteOrder simulates order processing and empties the cart.
	// Returns model.ErrCheckoutInProgress if an order is already processing.
	CompleteOrder(ctx context.Context) error

	// IsProcessing reports whether an order is being processed.
	IsProcessing() bool
}

// FavoriteService defines operations on the persistent favourites list.
type FavoriteService interface {
	// ToggleFavorite flips the favourite state and returns the new state.
	ToggleFavorite(ctx context.Context, product model.Product) (bool, error)

	// IsFavorite reports whether the product is a favourite.
	IsFavorite(ctx context.Context, productID string) (bool, error)

	// Favorites returns the favourite products, most recent first.
	Favorites(ctx context.Context) ([]model.Product, error)

	// FavoriteIDs returns the favourite product IDs.
	FavoriteIDs(ctx context.Context) ([]string, error)

	// ClearFavorites removes every favourite.
	ClearFavorites(ctx context.Context) error

	// WatchFavorites streams the favourite products on every change.
	WatchFavorites(ctx context.Context) *live.Feed[[]model.Product]

	// WatchFavoriteIDs streams the favourite IDs on every change.
	WatchFavoriteIDs(ctx context.Context) *live.Feed[[]string]
}
