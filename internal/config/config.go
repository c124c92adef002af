// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	DatabasePath   string `env:"DATABASE_PATH" envDefault:"therapy-admin.db"`
	RedisAddr      string `env:"REDIS_ADDR"`
	RedisPrefix    string `env:"REDIS_KEY_PREFIX" envDefault:"therapy:"`
	RedisChannel   string `env:"REDIS_CHANNEL" envDefault:"therapy-events"`

	CatalogKey      string `env:"CATALOG_STORAGE_KEY" envDefault:"therapy-modules"`
	ContentKey      string `env:"CONTENT_STORAGE_KEY" envDefault:"therapy-content"`
	ProgressKey     string `env:"PROGRESS_STORAGE_KEY" envDefault:"therapy-progress"`
	CatalogSeedFile string `env:"CATALOG_SEED_FILE"`

	JWTSecret    string `env:"JWT_SECRET"`
	BcryptCost   int    `env:"BCRYPT_COST" envDefault:"12"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"true"`

	AdminEmail       string `env:"ADMIN_EMAIL"`
	AdminPassword    string `env:"ADMIN_PASSWORD"`
	AdminDisplayName string `env:"ADMIN_DISPLAY_NAME" envDefault:"Administrator"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security"))
	}

	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost))
	}

	// Admin accounts live in SQLite whichever backend holds the catalog.
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	switch c.StorageBackend {
	case BackendSQLite:
	case BackendRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis backend"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be sqlite, redis or memory, got %q", c.StorageBackend))
	}

	if c.CatalogKey == c.ContentKey || c.CatalogKey == c.ProgressKey || c.ContentKey == c.ProgressKey {
		errs = append(errs, errors.New("catalog, content and progress storage keys must differ"))
	}

	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together"))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SlogLevel maps LOG_LEVEL onto a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
