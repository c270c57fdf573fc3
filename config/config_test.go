package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "NEO4J_URI", "NEO4J_USER", "NEO4J_PASSWORD", "REDIS_ADDR",
		"AUTH_MODE", "RATE_LIMIT_RPS", "CACHE_TTL", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, "neo4j", cfg.Neo4j.User)
	assert.Equal(t, "password", cfg.Neo4j.Password)
	assert.Equal(t, "", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, AuthModeNone, cfg.Auth.Mode)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("NEO4J_URI", "neo4j://graph:7687")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("NEO4J_ENSURE_SCHEMA", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("RATE_LIMIT_RPS", "12.5")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "neo4j://graph:7687", cfg.Neo4j.URI)
	assert.Equal(t, 2*time.Minute, cfg.Redis.TTL)
	assert.True(t, cfg.Neo4j.EnsureSchema)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.InDelta(t, 12.5, cfg.RateLimit.RPS, 0.0001)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("NEO4J_MAX_POOL_SIZE", "lots")
	t.Setenv("HTTP_READ_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Neo4j.MaxPoolSize)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_StatsScheduleCanBeDisabled(t *testing.T) {
	t.Setenv("STATS_SCHEDULE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Stats.Schedule)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Neo4j:     Neo4jConfig{URI: "bolt://localhost:7687", User: "neo4j"},
			Auth:      AuthConfig{Mode: AuthModeNone},
			RateLimit: RateLimitConfig{Burst: 1},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing uri", func(t *testing.T) {
		cfg := valid()
		cfg.Neo4j.URI = ""
		assert.EqualError(t, cfg.Validate(), "NEO4J_URI is required")
	})

	t.Run("apikey without key", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.Mode = AuthModeAPIKey
		assert.EqualError(t, cfg.Validate(), "API_KEY is required when AUTH_MODE=apikey")
	})

	t.Run("firebase without credentials", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.Mode = AuthModeFirebase
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown auth mode", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.Mode = "oauth"
		assert.ErrorContains(t, cfg.Validate(), "unknown AUTH_MODE")
	})

	t.Run("rate limit without burst", func(t *testing.T) {
		cfg := valid()
		cfg.RateLimit = RateLimitConfig{RPS: 5, Burst: 0}
		assert.Error(t, cfg.Validate())
	})
}
