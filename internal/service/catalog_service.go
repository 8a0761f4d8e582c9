package service

import (
	"context"
	"errors"
	"fmt"

	"mini-shop/internal/model"
	"mini-shop/internal/query"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	catalog ProductCatalog
	logger  zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalog ProductCatalog, logger zerolog.Logger) CatalogService {
	return &catalogService{
		catalog: catalog,
		logger:  logger.With().Str("service", "catalog").Logger(),
	}
}

// Products fetches the catalogue and applies the query.
func (s *catalogService) Products(ctx context.Context, searchText string, filter model.Filter) ([]model.Product, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch products")
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	result := query.Apply(products, searchText, filter)

	s.logger.Debug().
		Int("total", len(products)).
		Int("matched", len(result)).
		Str("search", searchText).
		Str("sort", string(filter.SortBy)).
		Msg("queried products")

	return result, nil
}

// ProductByID retrieves a single product by ID.
func (s *catalogService) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.catalog.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			s.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, model.ErrProductNotFound
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// FilterOptions returns the facets of the full catalogue.
func (s *catalogService) FilterOptions(ctx context.Context) (model.FilterOptions, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch products for filter options")
		return model.FilterOptions{}, fmt.Errorf("failed to fetch products: %w", err)
	}

	return query.Facets(products), nil
}
