package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Database.MaxConnLifetime)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.JWT.Enabled)
	assert.False(t, cfg.IsMemory())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_RETRY_DELAY", "250ms")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.IsMemory())
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.RetryDelay)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_ENABLED", "true")
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProductionRequiresDBPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestDatabaseConfig_ToDBConfig(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "require",
		MaxConns: 10, MinConns: 2, MaxRetries: 3, RetryDelay: time.Second,
	}

	got := d.ToDBConfig()

	assert.Equal(t, "db", got.Host)
	assert.Equal(t, "u", got.Username)
	assert.Equal(t, "n", got.DBName)
	assert.Equal(t, int32(10), got.MaxConns)
	assert.Equal(t, int32(2), got.MinConns)
	assert.Equal(t, "require", got.SSLMode)
}
