package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"mini-shop/internal/catalog"
	"mini-shop/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and
// the application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), "TRUNCATE cart_items, favorites RESTART IDENTITY")
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}

// SampleProducts is the catalogue served by the fake catalogue API.
var SampleProducts = []catalog.ProductResponse{
	{ID: "1", Name: "Opel Astra", Image: "https://img.example.com/1.png", Price: "18000.50", Description: "Compact sedan", Model: "Astra", Brand: "Opel", CreatedAt: "2023-07-17T07:21:02.529Z"},
	{ID: "2", Name: "Opel Corsa", Image: "https://img.example.com/2.png", Price: "12000", Description: "City hatchback", Model: "Corsa", Brand: "Opel", CreatedAt: "2023-07-16T20:51:52.139Z"},
	{ID: "3", Name: "Tesla Model S", Image: "https://img.example.com/3.png", Price: "75000", Description: "Electric saloon", Model: "Model S", Brand: "Tesla", CreatedAt: "2023-07-17T02:49:46.692Z"},
	{ID: "4", Name: "Ford Fiesta", Image: "https://img.example.com/4.png", Price: "not-a-price", Description: "Small car", Model: "Fiesta", Brand: "Ford", CreatedAt: "2023-07-16T23:40:00.000Z"},
}

// CatalogServer is a fake remote catalogue API.
type CatalogServer struct {
	*httptest.Server
	requests atomic.Int32
	failing  atomic.Bool
}

// Requests returns how many catalogue fetches were served.
func (s *CatalogServer) Requests() int {
	return int(s.requests.Load())
}

// SetFailing makes subsequent fetches answer 503.
func (s *CatalogServer) SetFailing(failing bool) {
	s.failing.Store(failing)
}

// SetupCatalogServer starts a fake catalogue API serving SampleProducts.
func SetupCatalogServer(t *testing.T) *CatalogServer {
	t.Helper()

	cs := &CatalogServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			http.NotFound(w, r)
			return
		}
		cs.requests.Add(1)
		if cs.failing.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SampleProducts)
	}))
	t.Cleanup(cs.Close)

	return cs
}
