package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/millionaire.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// SPADir is the built frontend to serve; empty disables it.
	SPADir string `env:"SPA_DIR"`

	// RedisURL enables the Redis leaderboard cache when set.
	RedisURL string `env:"REDIS_URL"`

	SeedDemo     bool   `env:"SEED_DEMO" envDefault:"true"`
	DemoName     string `env:"DEMO_NAME" envDefault:"Demo Player"`
	DemoEmail    string `env:"DEMO_EMAIL" envDefault:"player@example.com"`
	DemoPassword string `env:"DEMO_PASSWORD" envDefault:"changeme"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
