// Package config reads server configuration from environment variables (and a .env
// file, when present).
package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"hermannm.dev/wrap"
)

type Config struct {
	IsProduction bool `env:"PRODUCTION" envDefault:"false"`
	API          API
	Notes        Notes
	Gantt        Gantt
}

type API struct {
	Port string `env:"API_PORT" envDefault:"8080"`
}

type Notes struct {
	Dir string `env:"NOTES_DIR"`
}

type Gantt struct {
	// Interval length assumed for Gantt records that only give a single endpoint.
	DefaultBlockMinutes int `env:"GANTT_DEFAULT_BLOCK_MINUTES" envDefault:"60"`
}

func ReadFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, wrap.Error(err, "failed to load .env file")
	}

	parseOptions := env.Options{RequiredIfNoDef: true}

	var config Config
	if err := env.ParseWithOptions(&config, parseOptions); err != nil {
		return Config{}, wrap.Error(err, "invalid environment variables")
	}

	return config, nil
}
