package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionConfig_DefaultValues(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret-key")
	t.Setenv("SESSION_EXPIRATION_HOURS", "")

	cfg, err := NewSessionConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, []byte("test-secret-key"), cfg.Secret)
	assert.Equal(t, 12, cfg.ExpirationHours, "should use default expiration of 12 hours")
	assert.False(t, cfg.Generated)
}

func TestNewSessionConfig_GeneratesSecretWhenUnset(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	a, err := NewSessionConfig()
	require.NoError(t, err)
	b, err := NewSessionConfig()
	require.NoError(t, err)

	assert.True(t, a.Generated)
	assert.Len(t, a.Secret, 32)
	assert.NotEqual(t, a.Secret, b.Secret)
}

func TestNewSessionConfig_CustomExpiration(t *testing.T) {
	tests := []struct {
		name          string
		expiration    string
		expectedHours int
	}{
		{name: "custom expiration 24 hours", expiration: "24", expectedHours: 24},
		{name: "minimum expiration 1 hour", expiration: "1", expectedHours: 1},
		{name: "large expiration", expiration: "168", expectedHours: 168},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_SECRET", "test-secret-key")
			t.Setenv("SESSION_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewSessionConfig()
			require.NoError(t, err)
			assert.Equal(t, tt.expectedHours, cfg.ExpirationHours)
		})
	}
}

func TestNewSessionConfig_InvalidExpiration(t *testing.T) {
	tests := []struct {
		name       string
		expiration string
	}{
		{name: "non-numeric expiration", expiration: "invalid"},
		{name: "zero expiration", expiration: "0"},
		{name: "negative expiration", expiration: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_SECRET", "test-secret-key")
			t.Setenv("SESSION_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewSessionConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "SESSION_EXPIRATION_HOURS")
		})
	}
}
