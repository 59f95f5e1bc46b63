// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and FITCALC_ environment variables on top.
// - Validation errors wrap ErrInvalidConfig, loading errors ErrLoadConfig.
package config

import "github.com/okian/fitcalc/internal/domain/summary"

// Accepted values for Config.OnError.
const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Locale selects the summary wording: en or ru.
	Locale string `koanf:"locale"`

	// OnError decides what a failing package does to the batch:
	// abort stops at the first failure, skip logs it and moves on.
	OnError string `koanf:"on_error"`

	// MetricsDump logs the collected metrics once the batch finishes.
	MetricsDump bool `koanf:"metrics_dump"`

	// Packages overrides the built-in sample batch. File only.
	Packages []Package `koanf:"packages"`
}

// Package is one configured sensor package.
type Package struct {
	Code string    `koanf:"code"`
	Data []float64 `koanf:"data"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		Locale:      string(summary.LocaleEN),
		OnError:     OnErrorAbort,
		MetricsDump: false,
	}
}
