package catalog

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"mini-shop/internal/model"

	"github.com/stretchr/testify/require"
)

func sampleResponses() []ProductResponse {
	return []ProductResponse{
		{ID: "1", Name: "Apple iPhone 13", Price: "15000.00", Brand: "Apple", Model: "13", CreatedAt: "2023-01-01T00:00:00.000Z"},
		{ID: "2", Name: "Samsung Galaxy S22", Price: "12000", Brand: "Samsung", Model: "S22", CreatedAt: "2023-02-01T00:00:00.000Z"},
		{ID: "3", Name: "Broken Price", Price: "n/a", Brand: "Nokia", Model: "3310", CreatedAt: "2023-03-01T00:00:00.000Z"},
	}
}

// gzipJSON returns the gzipped JSON encoding of v.
func gzipJSON(t *testing.T, v any) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	require.NoError(t, json.NewEncoder(gz).Encode(v))
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// writeSnapshot writes a gzipped catalogue snapshot into a temp dir.
func writeSnapshot(t *testing.T, v any) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "products.json.gz")
	require.NoError(t, os.WriteFile(path, gzipJSON(t, v), 0o644))
	return path
}

// stubSource is a Source returning fixed results and counting calls.
type stubSource struct {
	products []model.Product
	err      error
	calls    atomic.Int32
}

func (s *stubSource) Fetch(ctx context.Context) ([]model.Product, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}
