// Package catalog fetches the remote product catalogue and keeps the last
// successful copy for lookups.
package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"mini-shop/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Source fetches the full product list.
// Failures to reach the catalogue are reported as model.ErrNetwork.
type Source interface {
	Fetch(ctx context.Context) ([]model.Product, error)
}

// ProductResponse is the wire shape of a catalogue product.
// Price arrives as a decimal string.
type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Model       string `json:"model"`
	Brand       string `json:"brand"`
	CreatedAt   string `json:"createdAt"`
}

// ParsePrice converts a wire price to a decimal.
// Unparsable and negative values become zero.
func ParsePrice(raw string) (decimal.Decimal, bool) {
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return decimal.Zero, false
	}
	return price, true
}

// ToProduct maps the wire shape to a domain product.
func (r ProductResponse) ToProduct(logger zerolog.Logger) model.Product {
	price, ok := ParsePrice(r.Price)
	if !ok {
		logger.Debug().
			Str("product_id", r.ID).
			Str("price", r.Price).
			Msg("malformed price, using zero")
	}

	return model.Product{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		Price:       price,
		Description: r.Description,
		Model:       r.Model,
		Brand:       r.Brand,
		CreatedAt:   r.CreatedAt,
	}
}

// decodeProducts reads a JSON array of products.
func decodeProducts(r io.Reader, logger zerolog.Logger) ([]model.Product, error) {
	var responses []ProductResponse
	if err := json.NewDecoder(r).Decode(&responses); err != nil {
		return nil, fmt.Errorf("failed to decode product list: %w", err)
	}

	products := make([]model.Product, 0, len(responses))
	for _, resp := range responses {
		products = append(products, resp.ToProduct(logger))
	}
	return products, nil
}

// decodeSnapshot reads a gzipped JSON array of products.
func decodeSnapshot(r io.Reader, logger zerolog.Logger) ([]model.Product, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	return decodeProducts(gzipReader, logger)
}

// networkError marks err as a catalogue availability failure.
func networkError(err error) error {
	return fmt.Errorf("%w: %w", model.ErrNetwork, err)
}
