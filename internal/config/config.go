package config

import (
	"os"
	"strconv"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// DefaultCacheTTL bounds how long a cached count may lag behind temp_table.
const DefaultCacheTTL = 2 * time.Second

// DatabaseConfig holds SQL database connection settings.
// Driver selects the dialect: "postgres" (pgx) or "mysql".
type DatabaseConfig struct {
	Driver             string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	AutoMigrate        bool
}

// RedisConfig holds settings for the optional count cache.
// An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
	TTL      time.Duration
	Prefix   string
}

// FeatureConfig toggles the optional components of the application.
type FeatureConfig struct {
	EnableUser bool
	UserName   string
}

// StartupTaskConfig controls the background task spawned at startup.
type StartupTaskConfig struct {
	Enabled    bool
	Iterations int
}

// HomeServerConfig controls the embedded net/http server.
type HomeServerConfig struct {
	Enabled bool
	Port    string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost            string
	Port               string
	LogLevel           string
	TimeZone           string
	ShutdownTimeoutSec int
	Database           DatabaseConfig
	Redis              RedisConfig
	Features           FeatureConfig
	StartupTask        StartupTaskConfig
	HomeServer         HomeServerConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	driver := getEnv("DB_DRIVER", DriverPostgres)
	defaultDBPort := "5432"
	if driver == DriverMySQL {
		defaultDBPort = "3306"
	}

	return &AppConfig{
		AppHost:            getEnv("APP_HOST", "localhost:8080"),
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		TimeZone:           getEnv("TZ_NAME", "UTC"),
		ShutdownTimeoutSec: getEnvInt("SHUTDOWN_TIMEOUT_SEC", 10),
		Database: DatabaseConfig{
			Driver:             driver,
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", defaultDBPort),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Addr:     redisAddr(),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TLS:      getEnvBool("REDIS_TLS", false),
			TTL:      getEnvDuration("CACHE_TTL", DefaultCacheTTL),
			Prefix:   getEnv("CACHE_PREFIX", "hellodemo"),
		},
		Features: FeatureConfig{
			EnableUser: getEnvBool("FEATURE_ENABLE_USER", true),
			UserName:   getEnv("USER_NAME", "default"),
		},
		StartupTask: StartupTaskConfig{
			Enabled:    getEnvBool("STARTUP_TASK_ENABLED", true),
			Iterations: getEnvInt("STARTUP_TASK_ITERATIONS", 10),
		},
		HomeServer: HomeServerConfig{
			Enabled: getEnvBool("HOME_SERVER_ENABLED", false),
			Port:    getEnv("HOME_SERVER_PORT", "10086"),
		},
	}
}

// ShutdownTimeout returns the graceful shutdown budget.
func (c *AppConfig) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}

// Location resolves TimeZone, falling back to UTC when unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// REDIS_HOST and REDIS_PORT take precedence over REDIS_ADDR when both are set.
func redisAddr() string {
	host := os.Getenv("REDIS_HOST")
	port := os.Getenv("REDIS_PORT")
	if host != "" && port != "" {
		return host + ":" + port
	}
	return os.Getenv("REDIS_ADDR")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
