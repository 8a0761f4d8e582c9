package catalog

import (
	"context"
	"sync"

	"mini-shop/internal/model"

	"github.com/rs/zerolog"
)

// Invalidator is implemented by sources that share a cached copy of the
// product list between replicas.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Catalog fetches products from a Source and remembers the last
// successful list for id lookups.
type Catalog struct {
	source Source
	logger zerolog.Logger

	mu   sync.RWMutex
	last []model.Product
}

// New creates a Catalog over source.
func New(source Source, logger zerolog.Logger) *Catalog {
	return &Catalog{
		source: source,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Products fetches the current product list.
func (c *Catalog) Products(ctx context.Context) ([]model.Product, error) {
	products, err := c.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.last = products
	c.mu.Unlock()

	return products, nil
}

// ProductByID returns a product from the last fetched list, refetching
// when it is not there. A shared cached list is dropped before the refetch,
// since it is missing the id too. Returns model.ErrProductNotFound if the
// catalogue does not contain the id.
func (c *Catalog) ProductByID(ctx context.Context, id string) (model.Product, error) {
	if p, ok := c.cached(id); ok {
		return p, nil
	}

	if inv, ok := c.source.(Invalidator); ok {
		if err := inv.Invalidate(ctx); err != nil {
			c.logger.Warn().Err(err).Str("product_id", id).Msg("failed to invalidate cached catalog")
		}
	}

	products, err := c.Products(ctx)
	if err != nil {
		return model.Product{}, err
	}

	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}

	c.logger.Debug().Str("product_id", id).Msg("product not in catalog")
	return model.Product{}, model.ErrProductNotFound
}

func (c *Catalog) cached(id string) (model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.last {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}
