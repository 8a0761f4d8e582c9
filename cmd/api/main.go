package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mini-shop/internal/catalog"
	"mini-shop/internal/config"
	"mini-shop/internal/database"
	"mini-shop/internal/handler"
	"mini-shop/internal/live"
	"mini-shop/internal/repository"
	"mini-shop/internal/router"
	"mini-shop/internal/service"
	"mini-shop/internal/telemetry"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting mini-shop API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			logger.Error().Err(err).Msg("failed to flush telemetry")
		}
	}()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Optional Redis for the shared catalogue cache and change relay
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	}

	// Initialize product catalogue
	var cache *catalog.RedisCache
	if redisClient != nil {
		cache = catalog.NewRedisCache(redisClient, catalog.WithCacheTTL(cfg.Redis.CacheTTLDuration()))
		defer func() {
			hits, misses := cache.Stats()
			logger.Info().Int64("hits", hits).Int64("misses", misses).Msg("catalog cache stats")
		}()
	}

	source, err := newCatalogSource(ctx, cfg, cache, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}
	productCatalog := catalog.New(source, logger)

	// Initialize change bus
	hub := live.NewHub()
	var bus service.ChangeBus = hub
	if redisClient != nil {
		relay := live.NewRedisRelay(hub, redisClient, cfg.Redis.Channel, logger)
		go func() {
			if err := relay.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("change relay stopped")
			}
		}()
		bus = relay
	}

	// Initialize repositories
	cartRepo := repository.NewCartRepository(pool, logger)
	favoriteRepo := repository.NewFavoriteRepository(pool, logger)

	// Initialize services
	catalogService := service.NewCatalogService(productCatalog, logger)
	cartService := service.NewCartService(cartRepo, bus, cfg.Checkout.Delay(), logger)
	favoriteService := service.NewFavoriteService(favoriteRepo, bus, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Product:  handler.NewProductHandler(catalogService, logger),
		Cart:     handler.NewCartHandler(cartService, catalogService, logger),
		Favorite: handler.NewFavoriteHandler(favoriteService, catalogService, logger),
		Stream:   handler.NewStreamHandler(cartService, favoriteService, logger),
	}, cfg.Telemetry.ServiceName, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		IdleTimeout:  60 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Stop live streams and the relay so hijacked connections close
		cancel()

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newCatalogSource builds the configured catalogue source, optionally
// backed by the local snapshot and fronted by the Redis cache.
func newCatalogSource(ctx context.Context, cfg *config.Config, cache *catalog.RedisCache, logger zerolog.Logger) (catalog.Source, error) {
	var source catalog.Source

	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		source = catalog.NewSnapshotSource(cfg.Catalog.SnapshotPath, logger)
		logger.Info().Str("file", cfg.Catalog.SnapshotPath).Msg("using catalog snapshot file")

	case config.CatalogSourceS3:
		s3Source, err := catalog.NewS3Source(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Key, logger)
		if err != nil {
			return nil, err
		}
		source = s3Source

	default:
		source = catalog.NewHTTPSource(cfg.Catalog.BaseURL, cfg.Catalog.TimeoutDuration(), logger)
		logger.Info().Str("base_url", cfg.Catalog.BaseURL).Msg("using remote catalog API")
	}

	if cfg.Catalog.Fallback && cfg.Catalog.Source != config.CatalogSourceFile {
		source = catalog.NewFallbackSource(source, catalog.NewSnapshotSource(cfg.Catalog.SnapshotPath, logger), logger)
		logger.Info().Str("file", cfg.Catalog.SnapshotPath).Msg("catalog snapshot fallback enabled")
	}

	if cache != nil {
		source = catalog.NewCachedSource(source, cache, logger)
	}

	return source, nil
}
