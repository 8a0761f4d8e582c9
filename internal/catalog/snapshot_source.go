package catalog

import (
	"context"
	"os"

	"mini-shop/internal/model"

	"github.com/rs/zerolog"
)

// snapshotSource implements Source over a gzipped JSON snapshot on disk.
type snapshotSource struct {
	path   string
	logger zerolog.Logger
}

// NewSnapshotSource creates a Source that reads the catalogue from a
// gzipped JSON file.
func NewSnapshotSource(path string, logger zerolog.Logger) Source {
	return &snapshotSource{
		path:   path,
		logger: logger.With().Str("component", "catalog-snapshot").Logger(),
	}
}

// Fetch reads and decodes the snapshot file.
func (s *snapshotSource) Fetch(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		s.logger.Error().Err(err).Str("file", s.path).Msg("failed to open catalog snapshot")
		return nil, networkError(err)
	}
	defer file.Close()

	products, err := decodeSnapshot(file, s.logger)
	if err != nil {
		s.logger.Error().Err(err).Str("file", s.path).Msg("failed to read catalog snapshot")
		return nil, networkError(err)
	}

	s.logger.Info().
		Str("file", s.path).
		Int("products_loaded", len(products)).
		Msg("catalog snapshot loaded")

	return products, nil
}
