package keyward

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/keyward/keyward-go/gateway"
	"github.com/keyward/keyward-go/storage"
)

// StorageType represents supported snapshot storage backends.
type StorageType string

const (
	// StorageNone disables snapshot exports.
	StorageNone StorageType = ""
	// StorageLocal represents local filesystem storage.
	StorageLocal StorageType = "local"
	// StorageS3 represents Amazon S3 storage.
	StorageS3 StorageType = "s3"
)

// Config holds the client configuration.
type Config struct {
	// Gateway configuration
	GatewayURI string
	Token      string
	Timeout    time.Duration

	// Gateway overrides the REST gateway with a custom implementation.
	Gateway gateway.Gateway

	// Snapshot export storage
	StorageType StorageType
	S3Config    *storage.S3Config
	LocalPath   string

	// Logger reports swallowed operation failures. Defaults to a no-op
	// logger.
	Logger *zap.Logger
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
		Logger:  zap.NewNop(),
	}
}

// Option is a functional option for client configuration.
type Option func(*Config)

// WithRESTGateway points the client at a REST table gateway.
func WithRESTGateway(uri string) Option {
	return func(c *Config) {
		c.GatewayURI = uri
	}
}

// WithToken sets a bearer token for authentication.
func WithToken(token string) Option {
	return func(c *Config) {
		c.Token = token
	}
}

// WithTimeout sets the gateway request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithGateway supplies a custom gateway implementation, bypassing the REST
// client.
func WithGateway(gw gateway.Gateway) Option {
	return func(c *Config) {
		c.Gateway = gw
	}
}

// WithLogger sets the logger used for failure reporting.
func WithLogger(log *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

// WithLocalStorage configures local filesystem snapshot storage.
func WithLocalStorage(basePath string) Option {
	return func(c *Config) {
		c.StorageType = StorageLocal
		c.LocalPath = basePath
	}
}

// WithS3 configures S3 snapshot storage.
func WithS3(cfg *storage.S3Config) Option {
	return func(c *Config) {
		c.StorageType = StorageS3
		c.S3Config = cfg
	}
}

// FromEnv reads gateway settings from the environment, loading a .env file
// first when one is present: KEYWARD_API_URL and KEYWARD_API_TOKEN.
func FromEnv() Option {
	return func(c *Config) {
		_ = godotenv.Load()

		if uri := os.Getenv("KEYWARD_API_URL"); uri != "" {
			c.GatewayURI = uri
		}
		if token := os.Getenv("KEYWARD_API_TOKEN"); token != "" {
			c.Token = token
		}
	}
}
