package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"API_BASE_URL", "PORT", "TOKEN_STORE_DSN", "CAROUSEL_INTERVAL",
		"VISITOR_IDLE_TIMEOUT", "VISITOR_SWEEP_INTERVAL", "COOKIE_SECURE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Empty(t, cfg.TokenStoreDSN)
	assert.Equal(t, 5*time.Second, cfg.CarouselInterval)
	assert.Equal(t, 30*time.Minute, cfg.IdleTimeout)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE_URL", "https://api.uniforms.example/api")
	t.Setenv("PORT", "8081")
	t.Setenv("CAROUSEL_INTERVAL", "2s")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.uniforms.example/api", cfg.APIBaseURL)
	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, 2*time.Second, cfg.CarouselInterval)
	assert.True(t, cfg.CookieSecure)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("CAROUSEL_INTERVAL", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "CAROUSEL_INTERVAL")

	clearEnv(t)
	t.Setenv("VISITOR_IDLE_TIMEOUT", "-1m")
	_, err = Load()
	assert.ErrorContains(t, err, "VISITOR_IDLE_TIMEOUT")

	clearEnv(t)
	t.Setenv("COOKIE_SECURE", "maybe")
	_, err = Load()
	assert.ErrorContains(t, err, "COOKIE_SECURE")
}
