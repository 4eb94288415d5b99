package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Env             string        `env:"APP_ENV" envDefault:"dev"` // "dev", "test" or "prod"
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	SiteConfig      string        `env:"SITE_CONFIG"`
	MessagesDir     string        `env:"MESSAGES_DIR"`
	PageCacheSize   int           `env:"PAGE_CACHE_SIZE" envDefault:"128"`
	SessionLifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"720h"`

	Site *Site `env:"-"`
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	site, err := LoadSite(cfg.SiteConfig)
	if err != nil {
		return nil, err
	}
	cfg.Site = site

	if cfg.PageCacheSize < 1 {
		return nil, fmt.Errorf("PAGE_CACHE_SIZE must be positive, got %d", cfg.PageCacheSize)
	}

	// Validação estrita para produção
	if cfg.IsProd() {
		if !strings.HasPrefix(site.BookingURL, "https://") {
			return nil, fmt.Errorf("production: booking_url must use https")
		}
		if !strings.HasPrefix(site.BaseURL, "https://") {
			return nil, fmt.Errorf("production: base_url must use https")
		}
		if cfg.MessagesDir != "" {
			return nil, fmt.Errorf("production: MESSAGES_DIR is a development setting")
		}
	}

	return cfg, nil
}
