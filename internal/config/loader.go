package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/okian/fitcalc/internal/domain/summary"
)

// Environment contract.
const (
	envPrefix     = "FITCALC_"
	envConfigFile = "FITCALC_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if FITCALC_CONFIG is set
//  3. env (prefix FITCALC_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Map env keys like FITCALC_ON_ERROR -> on_error (flat keys).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated fields and package shapes.
func (c *Config) Validate() error {
	locale, err := summary.ParseLocale(c.Locale)
	if err != nil {
		return fmt.Errorf("%w: locale: %w", ErrInvalidConfig, err)
	}
	c.Locale = string(locale)

	c.OnError = strings.ToLower(strings.TrimSpace(c.OnError))
	switch c.OnError {
	case OnErrorAbort, OnErrorSkip:
	default:
		return fmt.Errorf("%w: on_error must be one of %s, %s; got %q", ErrInvalidConfig, OnErrorAbort, OnErrorSkip, c.OnError)
	}

	for i, p := range c.Packages {
		if strings.TrimSpace(p.Code) == "" {
			return fmt.Errorf("%w: packages[%d]: code must not be empty", ErrInvalidConfig, i)
		}
	}
	return nil
}
