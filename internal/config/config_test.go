package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("FEATURE_ENABLE_USER", "false")
	t.Setenv("HOME_SERVER_PORT", "9999")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.False(t, cfg.Features.EnableUser)
	assert.Equal(t, "default", cfg.Features.UserName)
	assert.Equal(t, "9999", cfg.HomeServer.Port)
	assert.False(t, cfg.HomeServer.Enabled)
	assert.True(t, cfg.StartupTask.Enabled)
	assert.Equal(t, 10, cfg.StartupTask.Iterations)
}

func TestLoad_CacheTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "")
	assert.Equal(t, DefaultCacheTTL, Load().Redis.TTL)
	assert.LessOrEqual(t, DefaultCacheTTL, 5*time.Second)

	t.Setenv("CACHE_TTL", "750ms")
	assert.Equal(t, 750*time.Millisecond, Load().Redis.TTL)
}

func TestLoad_MySQLDefaultPort(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_PORT", "")

	cfg := Load()

	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "3306", cfg.Database.Port)
}

func TestLoad_RedisAddr(t *testing.T) {
	t.Run("addr only", func(t *testing.T) {
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("REDIS_HOST", "")
		t.Setenv("REDIS_PORT", "")
		assert.Equal(t, "cache:6379", Load().Redis.Addr)
	})

	t.Run("host and port win", func(t *testing.T) {
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("REDIS_HOST", "redis")
		t.Setenv("REDIS_PORT", "6380")
		assert.Equal(t, "redis:6380", Load().Redis.Addr)
	})

	t.Run("unset disables cache", func(t *testing.T) {
		t.Setenv("REDIS_ADDR", "")
		t.Setenv("REDIS_HOST", "")
		t.Setenv("REDIS_PORT", "")
		assert.Empty(t, Load().Redis.Addr)
	})
}

func TestShutdownTimeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, (&AppConfig{}).ShutdownTimeout())
	assert.Equal(t, 3*time.Second, (&AppConfig{ShutdownTimeoutSec: 3}).ShutdownTimeout())
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, (&AppConfig{TimeZone: "Not/AZone"}).Location())
	assert.Equal(t, "UTC", (&AppConfig{TimeZone: "UTC"}).Location().String())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_DURATION_VAR"
	defer os.Unsetenv(key)

	os.Setenv(key, "2m")
	assert.Equal(t, 2*time.Minute, getEnvDuration(key, time.Second))

	os.Setenv(key, "soon")
	assert.Equal(t, time.Second, getEnvDuration(key, time.Second))
}
