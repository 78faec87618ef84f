package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the whole application configuration.
// Populated from environment variables (see bindings below).
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"env" validate:"required,oneof=development staging production test"`
	Port        string `mapstructure:"port" validate:"required,numeric"`
	Version     string `mapstructure:"version"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=trace debug info warn error fatal"`
}

// StorageConfig selects the persistence backend.
//   - postgres: pgx pool (+ Redis cache when enabled)
//   - memory:   process-local store, nothing external needed
type StorageConfig struct {
	Driver      string `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	Seed        bool   `mapstructure:"seed"`
}

type DatabaseConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port" validate:"gt=0,lt=65536"`
	User              string        `mapstructure:"user"`
	Password          string        `mapstructure:"password"`
	Name              string        `mapstructure:"name"`
	SSLMode           string        `mapstructure:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int           `mapstructure:"max_conns" validate:"gt=0"`
	MinConns          int           `mapstructure:"min_conns" validate:"gte=0,ltefield=MaxConns"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
	MaxRetries        int           `mapstructure:"max_retries" validate:"gt=0"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
	ConnectTimeout    time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"gte=0"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// JWTConfig guards the mutating endpoints when Enabled.
type JWTConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// binding maps a config key to its environment variable and default value.
type binding struct {
	key string
	env string
	def interface{}
}

var bindings = []binding{
	{"app.name", "APP_NAME", "Course Library API"},
	{"app.env", "APP_ENV", "development"},
	{"app.port", "APP_PORT", "8080"},
	{"app.version", "APP_VERSION", "1.0.0"},
	{"app.log_level", "LOG_LEVEL", "info"},

	{"storage.driver", "STORAGE_DRIVER", "postgres"},
	{"storage.auto_migrate", "DB_AUTO_MIGRATE", true},
	{"storage.seed", "STORAGE_SEED", true},

	{"database.host", "DB_HOST", "localhost"},
	{"database.port", "DB_PORT", 5432},
	{"database.user", "DB_USER", "postgres"},
	{"database.password", "DB_PASSWORD", ""},
	{"database.name", "DB_NAME", "course_library"},
	{"database.sslmode", "DB_SSLMODE", "disable"},
	{"database.max_conns", "DB_MAX_CONNS", 25},
	{"database.min_conns", "DB_MIN_CONNS", 5},
	{"database.max_conn_lifetime", "DB_MAX_CONN_LIFETIME", "5m"},
	{"database.max_conn_idle_time", "DB_MAX_CONN_IDLE_TIME", "1m"},
	{"database.health_check_period", "DB_HEALTH_CHECK_PERIOD", "1m"},
	{"database.max_retries", "DB_MAX_RETRIES", 5},
	{"database.retry_delay", "DB_RETRY_DELAY", "1s"},
	{"database.connect_timeout", "DB_CONNECT_TIMEOUT", "10s"},

	{"redis.enabled", "REDIS_ENABLED", true},
	{"redis.addr", "REDIS_HOST", "localhost:6379"},
	{"redis.password", "REDIS_PASSWORD", ""},
	{"redis.db", "REDIS_DB", 0},
	{"redis.ttl", "REDIS_TTL", "15m"},

	{"jwt.enabled", "JWT_ENABLED", false},
	{"jwt.secret", "JWT_SECRET", defaultJWTSecret},
	{"jwt.token_ttl", "JWT_TOKEN_TTL", "24h"},

	{"cors.allowed_origins", "CORS_ALLOWED_ORIGINS", []string{"*"}},
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	v := viper.New()

	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", b.env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.CORS.AllowedOrigins = splitOrigins(cfg.CORS.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate runs the struct tag rules plus the cross-section rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.JWT.Enabled && len(c.JWT.Secret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters when JWT_ENABLED is set")
	}

	if c.App.Environment == "production" {
		if c.JWT.Enabled && c.JWT.Secret == defaultJWTSecret {
			return errors.New("JWT_SECRET must be set in production")
		}
		if c.Storage.Driver == "postgres" && c.Database.Password == "" {
			return errors.New("DB_PASSWORD must be set in production")
		}
	}

	if c.Storage.Driver == "postgres" {
		if c.Database.Host == "" || c.Database.Name == "" {
			return errors.New("DB_HOST and DB_NAME are required for the postgres storage driver")
		}
	}

	return nil
}

// IsMemory reports whether the process-local store is selected.
func (c *Config) IsMemory() bool {
	return c.Storage.Driver == "memory"
}

// splitOrigins accepts both "a,b" and ["a", "b"] forms.
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, origin := range strings.Split(item, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}
