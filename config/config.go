package config

import "strings"

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library, all prefixed with STYLEGENIE_. See the
// individual domain config files for available variables:
//   - api.go: backend endpoint configuration
//   - state.go: session persistence configuration
//   - output.go: CLI output configuration
type AppConfig struct {
	// LogLevel sets the minimum slog level: debug, info, warn or error.
	// The CLI defaults to warn so command output stays clean.
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`

	// API is the backend endpoint configuration.
	API APIConfig `envPrefix:"API_"`

	// State is the session persistence configuration.
	State StateConfig `envPrefix:"STATE_"`

	// Output is the CLI output configuration.
	Output OutputConfig `envPrefix:"OUTPUT_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment
// variables.
func (c *AppConfig) Sanitize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "warn"
	}

	c.API.Sanitize()
	c.State.Sanitize()
	c.Output.Sanitize()
}
