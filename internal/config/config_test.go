package config_test

import (
	"testing"

	"github.com/clinova/odonto-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ODONTO_JWT_SECRET", "test-secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ODONTO_JWT_SECRET", "test-secret")
	t.Setenv("ODONTO_SERVER_PORT", "9090")
	t.Setenv("ODONTO_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("ODONTO_JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}
