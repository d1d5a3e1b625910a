package config

import (
	"strings"
	"time"
)

// APIConfig contains backend endpoint configuration.
type APIConfig struct {
	// BaseURL is the root of the StyleGenie API, e.g.
	// "https://api.stylegenie.example/api".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000/api"`

	// Timeout bounds each request end to end. Zero falls back to the
	// client default; a negative value disables the timeout entirely.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
}
