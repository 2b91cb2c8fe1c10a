package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"APP_ENV", "DB_PATH", "DB_DRIVER", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"CACHE_ENABLED", "CACHE_TTL",
	"GRPC_PORT", "GRPC_REFLECTION_ENABLED", "HTTP_PORT", "DATA_PATH", "DATA_SHEET",
	"DEFAULT_DATASET",
}

func clearEnv(t *testing.T) {
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadFromEnv()

	assert.Equal(t, &Config{
		AppEnv:         "development",
		DBPath:         "./data/survey.db",
		DBDriver:       "sqlite3",
		RedisAddr:      "localhost:6379",
		CacheEnabled:   true,
		CacheTTL:       10 * time.Minute,
		GRPCPort:       50051,
		HTTPPort:       8080,
		DefaultDataset: "kuesioner",
	}, cfg)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("GRPC_PORT", "6000")
	t.Setenv("GRPC_REFLECTION_ENABLED", "true")
	t.Setenv("HTTP_PORT", "0")
	t.Setenv("DATA_PATH", "data_kuesioner.xlsx")
	t.Setenv("DATA_SHEET", "Kuesioner")
	t.Setenv("DEFAULT_DATASET", "wave-2")
	t.Setenv("REDIS_PASSWORD", "s3cret")
	t.Setenv("REDIS_DB", "3")

	cfg := LoadFromEnv()

	assert.Equal(t, "s3cret", cfg.RedisPassword)
	assert.Equal(t, 3, cfg.RedisDB)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 6000, cfg.GRPCPort)
	assert.True(t, cfg.GRPCReflectionEnabled)
	assert.Equal(t, 0, cfg.HTTPPort)
	assert.Equal(t, "data_kuesioner.xlsx", cfg.DataPath)
	assert.Equal(t, "Kuesioner", cfg.DataSheet)
	assert.Equal(t, "wave-2", cfg.DefaultDataset)
}

func TestLoadFromEnv_MalformedValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRPC_PORT", "abc")
	t.Setenv("CACHE_ENABLED", "maybe")
	t.Setenv("CACHE_TTL", "-5m")
	t.Setenv("REDIS_DB", "two")

	cfg := LoadFromEnv()

	assert.Equal(t, 0, cfg.RedisDB)

	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		logger, err := NewLogger(&Config{AppEnv: env})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}
