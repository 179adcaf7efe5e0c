package config

import (
	"context"
	"errors"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string   `env:"PORT,         default=4000"`
	Env         string   `env:"ENV,          default=development"`
	JWTSecret   string   `env:"JWT_SECRET"`
	LogLevel    string   `env:"LOG_LEVEL,    default=info"`
	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:5173,http://localhost:3000"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hostel_management"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ErrMissingJWTSecret is returned when JWT_SECRET is unset. Tokens cannot be
// signed without it, so startup must abort rather than limp along.
var ErrMissingJWTSecret = errors.New("config: JWT_SECRET is required")

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return &cfg, nil
}

// IsDevelopment reports whether the process runs in development mode.
// It controls cookie Secure flags and how much error detail leaks outward.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
