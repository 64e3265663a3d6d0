package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT, default=8080"`
	Env      string `env:"ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// ExposeInternalErrors appends the cause to 500 response bodies.
	ExposeInternalErrors bool          `env:"EXPOSE_INTERNAL_ERRORS, default=true"`
	BcryptCost           int           `env:"BCRYPT_COST, default=10"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string        `env:"MONGODB_URI, default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB, default=credit_card_db"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig configures the idempotency store. An empty Addr disables it.
type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR"`
	DB             int           `env:"REDIS_DB, default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// IsDevelopment reports whether the service runs locally.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("load config: MONGODB_URI must not be empty")
	}
	return &cfg, nil
}
