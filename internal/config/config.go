package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

var (
	ErrInvalidAddr = errors.New("invalid listen address")
	ErrInvalidPath = errors.New("invalid webhook path")
)

type Config struct {
	Addr              string      `env:"ADDR" envDefault:":3000"`
	WebhookPath       string      `env:"WEBHOOK_PATH" envDefault:"/fulfillment"`
	LogLevel          string      `env:"LOG_LEVEL" envDefault:"info"`
	ValidateResponses bool        `env:"VALIDATE_RESPONSES" envDefault:"false"`
	Voice             VoiceConfig `envPrefix:"VOICE_"`
}

type VoiceConfig struct {
	Language string `env:"LANGUAGE"`
	Name     string `env:"NAME"`
	Fallback string `env:"FALLBACK"`
}

const envPrefix = "FULFILLMENT_"

// Load reads FULFILLMENT_* variables from the process environment.
func Load() (Config, error) {
	return parse(env.Options{Prefix: envPrefix})
}

// LoadFrom reads the same variables from environ instead of the process
// environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Prefix: envPrefix, Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return ErrInvalidAddr
	}
	if !strings.HasPrefix(c.WebhookPath, "/") {
		return fmt.Errorf("%w: %q must start with /", ErrInvalidPath, c.WebhookPath)
	}
	return nil
}
