package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Catalogue source kinds.
const (
	CatalogSourceHTTP = "http"
	CatalogSourceFile = "file"
	CatalogSourceS3   = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Catalog   CatalogConfig
	S3        S3Config
	Redis     RedisConfig
	Checkout  CheckoutConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host         string
	Port         int
	WriteTimeout int // seconds
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// CatalogConfig holds configuration for the product catalogue source.
type CatalogConfig struct {
	Source       string // "http", "file" or "s3"
	BaseURL      string
	Timeout      int // seconds
	SnapshotPath string
	// Fallback serves the local snapshot when the primary source fails.
	Fallback bool
}

// S3Config holds AWS S3 configuration for catalogue snapshots.
type S3Config struct {
	Bucket string
	Region string
	Key    string
}

// RedisConfig holds configuration for the shared catalogue cache and change relay.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	CacheTTL int // seconds
	Channel  string
}

// CheckoutConfig holds configuration for the checkout stub.
type CheckoutConfig struct {
	DelayMillis int
}

// TelemetryConfig holds OpenTelemetry configuration.
type TelemetryConfig struct {
	Enabled      bool
	Exporter     string // "stdout" or "otlp"
	OTLPEndpoint string
	ServiceName  string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "minishop"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Catalog: CatalogConfig{
			Source:       getEnv("CATALOG_SOURCE", CatalogSourceHTTP),
			BaseURL:      getEnv("CATALOG_BASE_URL", "https://5fc9346b2af77700165ae514.mockapi.io"),
			Timeout:      getEnvAsInt("CATALOG_TIMEOUT", 15),
			SnapshotPath: getEnv("CATALOG_SNAPSHOT_PATH", "data/catalog/products.json.gz"),
			Fallback:     getEnvAsBool("CATALOG_SNAPSHOT_FALLBACK", false),
		},
		S3: S3Config{
			Bucket: getEnv("S3_BUCKET", ""),
			Region: getEnv("S3_REGION", "us-east-1"),
			Key:    getEnv("S3_KEY", "catalog/products.json.gz"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsInt("CATALOG_CACHE_TTL", 300),
			Channel:  getEnv("REDIS_CHANGE_CHANNEL", "minishop:changes"),
		},
		Checkout: CheckoutConfig{
			DelayMillis: getEnvAsInt("CHECKOUT_DELAY_MS", 2000),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getEnvAsBool("TELEMETRY_ENABLED", false),
			Exporter:     getEnv("TELEMETRY_EXPORTER", "stdout"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "mini-shop"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.WriteTimeout < 1 {
		return fmt.Errorf("server write timeout must be at least 1 second")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	switch c.Catalog.Source {
	case CatalogSourceHTTP:
		if c.Catalog.BaseURL == "" {
			return fmt.Errorf("catalog base URL is required for the http source")
		}
	case CatalogSourceFile:
		if c.Catalog.SnapshotPath == "" {
			return fmt.Errorf("catalog snapshot path is required for the file source")
		}
	case CatalogSourceS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required for the s3 catalog source")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required for the s3 catalog source")
		}
		if c.S3.Key == "" {
			return fmt.Errorf("S3 key is required for the s3 catalog source")
		}
	default:
		return fmt.Errorf("invalid catalog source: %s (must be http, file, or s3)", c.Catalog.Source)
	}

	if c.Catalog.Fallback && c.Catalog.SnapshotPath == "" {
		return fmt.Errorf("catalog snapshot path is required when the snapshot fallback is enabled")
	}

	if c.Catalog.Timeout < 1 {
		return fmt.Errorf("catalog timeout must be at least 1 second")
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required when redis is enabled")
		}
		if c.Redis.CacheTTL < 0 {
			return fmt.Errorf("catalog cache TTL cannot be negative")
		}
	}

	if c.Checkout.DelayMillis < 0 {
		return fmt.Errorf("checkout delay cannot be negative")
	}

	// The checkout response is written after the delay.
	if c.Checkout.Delay() >= c.Server.WriteTimeoutDuration() {
		return fmt.Errorf("checkout delay (%s) must be shorter than the server write timeout (%s)",
			c.Checkout.Delay(), c.Server.WriteTimeoutDuration())
	}

	if c.Telemetry.Enabled {
		if c.Telemetry.Exporter != "stdout" && c.Telemetry.Exporter != "otlp" {
			return fmt.Errorf("invalid telemetry exporter: %s (must be stdout or otlp)", c.Telemetry.Exporter)
		}
		if c.Telemetry.Exporter == "otlp" && c.Telemetry.OTLPEndpoint == "" {
			return fmt.Errorf("OTLP endpoint is required for the otlp exporter")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WriteTimeoutDuration returns the HTTP server write timeout.
func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

// TimeoutDuration returns the catalogue request timeout.
func (c *CatalogConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// CacheTTLDuration returns the catalogue cache TTL.
func (c *RedisConfig) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Delay returns the simulated order processing delay.
func (c *CheckoutConfig) Delay() time.Duration {
	return time.Duration(c.DelayMillis) * time.Millisecond
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
