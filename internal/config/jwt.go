package config

import (
	"crypto/rand"
	"fmt"
	"os"
	"strconv"
)

// SessionConfig holds configuration for signing the session cookie.
type SessionConfig struct {
	Secret          []byte
	ExpirationHours int
	// Generated is true when no secret was configured and a random one was
	// created; sessions then do not survive a restart.
	Generated bool
}

// NewSessionConfig creates a session configuration from environment variables.
// It reads SESSION_SECRET (random when unset) and SESSION_EXPIRATION_HOURS (default: 12).
func NewSessionConfig() (*SessionConfig, error) {
	expirationStr := os.Getenv("SESSION_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "12" // default
	}

	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_EXPIRATION_HOURS: %v", err)
	}

	config := &SessionConfig{
		Secret:          []byte(os.Getenv("SESSION_SECRET")),
		ExpirationHours: expirationHours,
	}

	if len(config.Secret) == 0 {
		config.Secret = make([]byte, 32)
		if _, err := rand.Read(config.Secret); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		config.Generated = true
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *SessionConfig) normalize() error {
	if len(c.Secret) == 0 {
		return fmt.Errorf("SESSION_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("SESSION_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
