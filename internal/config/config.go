package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/01moynul/schooluniforms-web/internal/api"
)

// Config is everything the web client reads from the environment.
type Config struct {
	APIBaseURL       string        // API_BASE_URL
	Port             string        // PORT
	TokenStoreDSN    string        // TOKEN_STORE_DSN; empty keeps tokens in memory
	CarouselInterval time.Duration // CAROUSEL_INTERVAL
	IdleTimeout      time.Duration // VISITOR_IDLE_TIMEOUT
	SweepInterval    time.Duration // VISITOR_SWEEP_INTERVAL
	CookieSecure     bool          // COOKIE_SECURE
}

// Load reads the environment, falling back to defaults for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL:    getenv("API_BASE_URL", api.DefaultBaseURL),
		Port:          getenv("PORT", "3000"),
		TokenStoreDSN: os.Getenv("TOKEN_STORE_DSN"),
	}

	var err error
	if cfg.CarouselInterval, err = duration("CAROUSEL_INTERVAL", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.IdleTimeout, err = duration("VISITOR_IDLE_TIMEOUT", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = duration("VISITOR_SWEEP_INTERVAL", time.Minute); err != nil {
		return nil, err
	}

	if raw := os.Getenv("COOKIE_SECURE"); raw != "" {
		if cfg.CookieSecure, err = strconv.ParseBool(raw); err != nil {
			return nil, fmt.Errorf("COOKIE_SECURE: %w", err)
		}
	}

	return cfg, nil
}

// Addr is the listen address for the configured port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, raw)
	}
	return d, nil
}
