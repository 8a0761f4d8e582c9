package catalog

import (
	"context"

	"mini-shop/internal/model"

	"github.com/rs/zerolog"
)

// fallbackSource tries a primary Source and falls back to a secondary one.
type fallbackSource struct {
	primary   Source
	secondary Source
	logger    zerolog.Logger
}

// NewFallbackSource creates a Source that serves secondary when primary fails.
// If both fail, the primary error is returned.
func NewFallbackSource(primary, secondary Source, logger zerolog.Logger) Source {
	return &fallbackSource{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With().Str("component", "catalog-fallback").Logger(),
	}
}

func (s *fallbackSource) Fetch(ctx context.Context) ([]model.Product, error) {
	products, err := s.primary.Fetch(ctx)
	if err == nil {
		return products, nil
	}

	if ctx.Err() != nil {
		return nil, err
	}

	s.logger.Warn().Err(err).Msg("primary catalog source failed, falling back")

	products, fbErr := s.secondary.Fetch(ctx)
	if fbErr != nil {
		s.logger.Error().Err(fbErr).Msg("fallback catalog source failed")
		return nil, err
	}

	return products, nil
}
