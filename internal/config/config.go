package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"panelscope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Watcher WatcherConfig
	Logging LoggingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// StorageConfig selects and configures the KV engine backing the persisted
// collections.
type StorageConfig struct {
	// Engine is one of "memory", "file", "redis", "postgres".
	Engine string

	// File engine
	Dir string

	// Redis engine
	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Postgres engine
	DatabaseURL string
}

// WatcherConfig controls the polling fallback for external change
// detection. Disabled by default; in-process writes already notify.
type WatcherConfig struct {
	Enabled  bool
	Interval time.Duration
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment (and .env when present)
// and validates it.
func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Storage: StorageConfig{
			Engine:        getEnv("STORAGE_ENGINE", "file"),
			Dir:           getEnv("STORAGE_DIR", "./data"),
			RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getEnvInt("REDIS_DB", 0),
			DatabaseURL:   os.Getenv("DATABASE_URL"),
		},
		Watcher: WatcherConfig{
			Enabled:  getEnvBool("WATCHER_ENABLED", false),
			Interval: getEnvDuration("WATCHER_INTERVAL", 5*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Storage.Engine {
	case "memory", "file", "redis":
	case "postgres":
		if cfg.Storage.DatabaseURL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required for the postgres engine")
		}
	default:
		return errors.ConfigInvalid("unknown STORAGE_ENGINE: " + cfg.Storage.Engine)
	}

	if cfg.Watcher.Enabled && cfg.Watcher.Interval <= 0 {
		return errors.ConfigInvalid("WATCHER_INTERVAL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
