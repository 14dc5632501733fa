package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Fretes FreteConfig
}

type MongoConfig struct {
	URI         string        `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string        `env:"MONGO_DB,            default=broday_transportes"`
	MaxPoolSize uint64        `env:"MONGO_MAX_POOL_SIZE, default=0"`
	Timeout     time.Duration `env:"MONGO_TIMEOUT,       default=10s"`
}

type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// FreteConfig tunes the freight lifecycle rules and the audit dispatcher.
type FreteConfig struct {
	CancelWindow             time.Duration `env:"CANCEL_WINDOW,              default=168h"`
	DefaultDeliveryDays      int           `env:"DEFAULT_DELIVERY_DAYS,      default=15"`
	AvailableIncludeAccepted bool          `env:"AVAILABLE_INCLUDE_ACCEPTED, default=false"`
	EventWorkers             int           `env:"EVENT_WORKERS,              default=8"`
}

// IsProduction reports whether internal error details must be withheld.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if cfg.Fretes.DefaultDeliveryDays <= 0 {
		return nil, fmt.Errorf("DEFAULT_DELIVERY_DAYS must be positive, got %d", cfg.Fretes.DefaultDeliveryDays)
	}
	if cfg.Fretes.CancelWindow < 0 {
		return nil, fmt.Errorf("CANCEL_WINDOW must not be negative, got %s", cfg.Fretes.CancelWindow)
	}
	return &cfg, nil
}
