package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr   string     `env:"HTTP_ADDR" envDefault:":8080"`
	DataDir    string     `env:"DATA_DIR" envDefault:"data"`
	SourceDir  string     `env:"SOURCE_DIR" envDefault:"sources"`
	GeocodeURL string     `env:"GEOCODE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	LogLevel   slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir     string     `env:"SPA_DIR" envDefault:"../web/dist"`
}

func Load() (*Config, error) {
	// A local .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
