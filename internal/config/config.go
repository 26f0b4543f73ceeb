package config

import (
	"errors"
	"fmt"
	"time"

	"brewery/internal/cache"

	"github.com/spf13/viper"
)

// Supported values of DATABASE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the runtime configuration of the brewery service.
type Config struct {
	AppPort          string
	AppEnv           string
	LogLevel         string
	DatabaseDriver   string
	DatabaseDSN      string
	AutoMigrate      bool
	SeedData         bool
	Cache            cache.Config
	RabbitMQURL      string
	RabbitMQExchange string
	RabbitMQQueue    string
	LocationBaseURL  string
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	defaults := cache.DefaultConfig()

	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "file:brewery.db?cache=shared")
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)
	v.SetDefault("SEED_DATA", true)
	v.SetDefault("CACHE_CAPACITY", defaults.Capacity)
	v.SetDefault("CACHE_SHARDS", defaults.NumShards)
	v.SetDefault("CACHE_TTL", defaults.TTL)
	v.SetDefault("CACHE_EVICTION_PERCENTAGE", defaults.EvictionPercentage)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "beer")
	v.SetDefault("RABBITMQ_QUEUE", "beer_events")
	v.SetDefault("LOCATION_BASE_URL", "http://api.springframework.guru")
}

// Load reads the configuration from environment variables and, when
// CONFIG_FILE is set, from that file.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := Config{
		AppPort:        v.GetString("APP_PORT"),
		AppEnv:         v.GetString("APP_ENV"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		AutoMigrate:    v.GetBool("DATABASE_AUTO_MIGRATE"),
		SeedData:       v.GetBool("SEED_DATA"),
		Cache: cache.Config{
			Capacity:           v.GetInt("CACHE_CAPACITY"),
			NumShards:          v.GetInt("CACHE_SHARDS"),
			TTL:                v.GetDuration("CACHE_TTL"),
			EvictionPercentage: v.GetInt("CACHE_EVICTION_PERCENTAGE"),
		},
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RabbitMQExchange: v.GetString("RABBITMQ_EXCHANGE"),
		RabbitMQQueue:    v.GetString("RABBITMQ_QUEUE"),
		LocationBaseURL:  v.GetString("LOCATION_BASE_URL"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for driver %s", c.DatabaseDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.AppPort == "" {
		return errors.New("APP_PORT is required")
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("invalid cache configuration: %w", err)
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ShutdownTimeout bounds how long the HTTP server waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second
