package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the apkraft service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"apkraft"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"APKRAFT_PORT" envDefault:"5150"`
	LogLevel        string        `env:"APKRAFT_LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Database (required, no defaults)
	DBPostgresqlWriteDSN string `env:"DB_POSTGRESQL_WRITE_DSN,notEmpty"`

	// Database Connection Pool
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	DBAutoMigrate  bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	// Public base URL used when building file download links (e.g. "https://apk.example.com")
	APIURL string `env:"APKRAFT_API_URL"`

	// Storage Backend Selection
	StorageBackend string `env:"APKRAFT_STORAGE_BACKEND" envDefault:"local"` // Options: "s3" or "local"

	// Local Storage Configuration
	LocalStoragePath string `env:"APKRAFT_LOCAL_STORAGE_PATH" envDefault:"./storage"`

	// S3 Storage Configuration
	S3Endpoint     string        `env:"APKRAFT_S3_ENDPOINT"`
	S3Region       string        `env:"APKRAFT_S3_REGION" envDefault:"us-east-1"`
	S3Bucket       string        `env:"APKRAFT_S3_BUCKET"`
	S3AccessKeyID  string        `env:"APKRAFT_S3_ACCESS_KEY_ID"`
	S3SecretKey    string        `env:"APKRAFT_S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle bool          `env:"APKRAFT_S3_USE_PATH_STYLE" envDefault:"true"`
	S3PresignTTL   time.Duration `env:"APKRAFT_S3_PRESIGN_TTL" envDefault:"1h"`
	PresignFiles   bool          `env:"APKRAFT_PRESIGN_DOWNLOADS" envDefault:"false"`

	// Upload Configuration
	MaxUploadBytes int64 `env:"APKRAFT_MAX_UPLOAD_BYTES" envDefault:"209715200"`

	// Seed data
	PlatformSeedFile string `env:"APKRAFT_PLATFORM_SEED_FILE"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.S3Bucket = strings.TrimSpace(cfg.S3Bucket)
	cfg.S3AccessKeyID = strings.TrimSpace(cfg.S3AccessKeyID)
	cfg.S3SecretKey = strings.TrimSpace(cfg.S3SecretKey)
	cfg.S3Endpoint = strings.TrimSpace(cfg.S3Endpoint)
	cfg.APIURL = strings.TrimSuffix(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 200 * 1024 * 1024
	}
	if !cfg.IsLocalStorage() && !cfg.IsS3Storage() {
		return nil, fmt.Errorf("unsupported APKRAFT_STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	if cfg.IsS3Storage() && cfg.S3Bucket == "" {
		return nil, fmt.Errorf("APKRAFT_S3_BUCKET is required when APKRAFT_STORAGE_BACKEND is s3")
	}
	return cfg, nil
}

// GetDatabaseWriteDSN returns the write database connection string.
func (c *Config) GetDatabaseWriteDSN() string {
	return c.DBPostgresqlWriteDSN
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsLocalStorage returns true if local storage backend is configured.
func (c *Config) IsLocalStorage() bool {
	return strings.ToLower(strings.TrimSpace(c.StorageBackend)) == "local"
}

// IsS3Storage returns true if S3 storage backend is configured.
func (c *Config) IsS3Storage() bool {
	return strings.ToLower(strings.TrimSpace(c.StorageBackend)) == "s3"
}
