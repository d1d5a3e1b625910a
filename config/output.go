package config

import "strings"

// OutputConfig contains CLI output configuration.
type OutputConfig struct {
	// Query is a default JMESPath expression applied to command output.
	// The -query flag overrides it per invocation.
	Query string `env:"QUERY" envDefault:""`
}

// Sanitize applies guardrails to output configuration values.
func (o *OutputConfig) Sanitize() {
	o.Query = strings.TrimSpace(o.Query)
}
