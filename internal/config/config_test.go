package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "safetap-backend", cfg.App.Name)
	require.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	require.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	require.Equal(t, 16, cfg.Broadcast.ObserverBuffer)
	require.False(t, cfg.Broadcast.RelayEnabled)
	require.Equal(t, 64, cfg.Broadcast.RelayBuffer)
	require.Equal(t, "migrations", cfg.Postgres.MigrationsDir)
	require.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("BROADCAST_OBSERVER_BUFFER", "64")
	t.Setenv("BROADCAST_RELAY_ENABLED", "true")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.App.Port)
	require.Equal(t, 64, cfg.Broadcast.ObserverBuffer)
	require.True(t, cfg.Broadcast.RelayEnabled)
	require.Equal(t, time.Duration(0), cfg.App.RequestTimeout())
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	_, err := Load()
	require.Error(t, err)
}
