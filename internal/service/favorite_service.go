package service

import (
	"context"
	"fmt"
	"time"

	"mini-shop/internal/live"
	"mini-shop/internal/model"
	"mini-shop/internal/repository"

	"github.com/rs/zerolog"
)

// favoriteService implements FavoriteService.
type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	bus          ChangeBus
	locks        *keyedMutex
	now          func() time.Time
	logger       zerolog.Logger
}

// NewFavoriteService creates a new favourite service.
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, bus ChangeBus, logger zerolog.Logger) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		bus:          bus,
		locks:        newKeyedMutex(),
		now:          time.Now,
		logger:       logger.With().Str("service", "favorite").Logger(),
	}
}

// ToggleFavorite flips the favourite state of product.
func (s *favoriteService) ToggleFavorite(ctx context.Context, product model.Product) (bool, error) {
	unlock := s.locks.Lock(product.ID)
	defer unlock()

	favorited, err := s.favoriteRepo.Toggle(ctx, model.NewFavoriteEntry(product, s.now().UTC()))
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to toggle favorite")
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Bool("favorite", favorited).
		Msg("favorite toggled")

	s.bus.Publish(live.TopicFavorites)
	return favorited, nil
}

// IsFavorite reports whether the product is a favourite.
func (s *favoriteService) IsFavorite(ctx context.Context, productID string) (bool, error) {
	exists, err := s.favoriteRepo.Exists(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to check favorite")
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

// Favorites returns the favourite products.
func (s *favoriteService) Favorites(ctx context.Context) ([]model.Product, error) {
	entries, err := s.favoriteRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list favorites")
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	products := make([]model.Product, 0, len(entries))
	for _, e := range entries {
		products = append(products, e.Product())
	}
	return products, nil
}

// FavoriteIDs returns the favourite product IDs.
func (s *favoriteService) FavoriteIDs(ctx context.Context) ([]string, error) {
	ids, err := s.favoriteRepo.IDs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list favorite IDs")
		return nil, fmt.Errorf("failed to list favorite IDs: %w", err)
	}
	return ids, nil
}

// ClearFavorites removes every favourite.
func (s *favoriteService) ClearFavorites(ctx context.Context) error {
	removed, err := s.favoriteRepo.Clear(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to clear favorites")
		return fmt.Errorf("failed to clear favorites: %w", err)
	}

	s.logger.Info().Int64("removed", removed).Msg("favorites cleared")

	if removed > 0 {
		s.bus.Publish(live.TopicFavorites)
	}
	return nil
}

func (s *favoriteService) WatchFavorites(ctx context.Context) *live.Feed[[]model.Product] {
	return live.Watch(ctx, s.bus, live.TopicFavorites, s.Favorites)
}

func (s *favoriteService) WatchFavoriteIDs(ctx context.Context) *live.Feed[[]string] {
	return live.Watch(ctx, s.bus, live.TopicFavorites, s.FavoriteIDs)
}
