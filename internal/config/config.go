// Package config loads server settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server's runtime settings.
type Config struct {
	// Addr is the listen address for the HTTP server
	Addr string `env:"LOVELETTER_ADDR" envDefault:":8080"`

	// TokenSecret signs seat tokens. When empty the server generates
	// one at startup, so tokens stop working across restarts.
	TokenSecret string `env:"LOVELETTER_TOKEN_SECRET"`

	// BaseURL is the public URL joins are advertised under, used for
	// QR codes
	BaseURL string `env:"LOVELETTER_BASE_URL" envDefault:"http://localhost:8080"`

	// DevLog switches logging to the human-readable development format
	DevLog bool `env:"LOVELETTER_DEV_LOG"`
}

// Load reads settings from the environment, honoring a .env file when
// one is present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
