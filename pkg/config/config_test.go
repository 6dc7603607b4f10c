package config_test

import (
	"testing"
	"time"

	"ai-worker-console/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_DRIVER", "DATABASE_URL", "DB_HOST", "JWT_TTL_HOURS", "SEED_MOCK_DATA"} {
		t.Setenv(key, "")
	}

	cfg := config.FromEnv()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, config.DriverMemory, cfg.StoreDriver)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.SeedMockData)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", config.DriverPostgres)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "console")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "aiworker")
	t.Setenv("DB_PORT", "")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("SEED_MOCK_DATA", "false")

	cfg := config.FromEnv()
	assert.Equal(t, config.DriverPostgres, cfg.StoreDriver)
	assert.Contains(t, cfg.DatabaseURL, "host=db")
	assert.Contains(t, cfg.DatabaseURL, "port=5432")
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.SeedMockData)
}
