package config

import (
	"fmt"
	"strings"
)

// StateBackend selects where the session record is persisted.
type StateBackend string

const (
	// StateBackendFile keeps the session in a local JSON file.
	StateBackendFile StateBackend = "file"
	// StateBackendRedis keeps the session in Redis, for shared or
	// ephemeral environments.
	StateBackendRedis StateBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler so the backend can be
// set directly from an environment variable.
func (b *StateBackend) UnmarshalText(text []byte) error {
	switch parsed := StateBackend(strings.ToLower(strings.TrimSpace(string(text)))); parsed {
	case StateBackendFile, StateBackendRedis:
		*b = parsed
		return nil
	default:
		return fmt.Errorf("unknown state backend %q (valid: file, redis)", string(text))
	}
}

// StateConfig contains session persistence configuration.
type StateConfig struct {
	// Backend picks the persistence mechanism.
	Backend StateBackend `env:"BACKEND" envDefault:"file"`

	// FilePath overrides the session file location for the file backend.
	// Empty means a default under the user's config directory.
	FilePath string `env:"FILE" envDefault:""`

	// Redis connection settings, used when Backend is redis.
	Redis RedisStateConfig `envPrefix:"REDIS_"`
}

// RedisStateConfig contains Redis connection settings for the session
// record.
type RedisStateConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
	Key      string `env:"KEY"      envDefault:"stylegenie:session"`
}

// Sanitize applies guardrails to state configuration values.
func (s *StateConfig) Sanitize() {
	s.FilePath = strings.TrimSpace(s.FilePath)
	s.Redis.Key = strings.TrimSpace(s.Redis.Key)
	if s.Redis.Key == "" {
		s.Redis.Key = "stylegenie:session"
	}
	if s.Redis.DB < 0 {
		s.Redis.DB = 0
	}
}
