// Package config reads server settings from the environment. A .env file in
// the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

// Config holds every tunable of the site.
type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	BasePath       string        `env:"BASE_PATH" envDefault:"/"`
	ContentPath    string        `env:"CONTENT_PATH"`
	ResumePath     string        `env:"RESUME_PATH"`
	RevealInterval time.Duration `env:"REVEAL_INTERVAL" envDefault:"50ms"`
	CarouselWindow int           `env:"CAROUSEL_WINDOW" envDefault:"3"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SessionSweep   time.Duration `env:"SESSION_SWEEP" envDefault:"1m"`
	SessionLimit   int           `env:"SESSION_LIMIT" envDefault:"10000"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	GinMode        string        `env:"GIN_MODE" envDefault:"release"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.BasePath = NormalizeBasePath(cfg.BasePath)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if !strings.HasPrefix(c.BasePath, "/") {
		errs = append(errs, fmt.Errorf("BASE_PATH %q must start with /", c.BasePath))
	}
	if c.RevealInterval <= 0 {
		errs = append(errs, fmt.Errorf("REVEAL_INTERVAL must be positive, got %s", c.RevealInterval))
	}
	if c.CarouselWindow <= 0 {
		errs = append(errs, fmt.Errorf("CAROUSEL_WINDOW must be positive, got %d", c.CarouselWindow))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if c.SessionSweep <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_SWEEP must be positive, got %s", c.SessionSweep))
	}
	if c.SessionLimit < 0 {
		errs = append(errs, fmt.Errorf("SESSION_LIMIT must not be negative, got %d", c.SessionLimit))
	}
	return errors.Join(errs...)
}

// NormalizeBasePath trims surrounding whitespace and any trailing slash,
// keeping "/" for the root.
func NormalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return "/"
		}
	}
	return p
}
