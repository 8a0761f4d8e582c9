package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mini-shop/internal/model"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// httpSource implements Source over the remote catalogue API.
type httpSource struct {
	client  *http.Client
	baseURL string
	logger  zerolog.Logger
}

// NewHTTPSource creates a Source that issues GET {baseURL}/products.
func NewHTTPSource(baseURL string, timeout time.Duration, logger zerolog.Logger) Source {
	return &httpSource{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With().Str("component", "catalog-http").Logger(),
	}
}

// Fetch retrieves the product list from the remote API.
func (s *httpSource) Fetch(ctx context.Context) ([]model.Product, error) {
	url := s.baseURL + "/products"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("url", url).Msg("catalog request failed")
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Error().
			Int("status", resp.StatusCode).
			Str("url", url).
			Msg("catalog returned unexpected status")
		return nil, networkError(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	products, err := decodeProducts(resp.Body, s.logger)
	if err != nil {
		s.logger.Error().Err(err).Str("url", url).Msg("failed to decode catalog response")
		return nil, networkError(err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Dur("duration", time.Since(start)).
		Msg("catalog fetched")

	return products, nil
}
