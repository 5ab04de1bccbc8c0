package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("SNAPSHOT_FILE", "")

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "disable", cfg.DBSSLMode)
	require.Equal(t, "raffle-state.json", cfg.SnapshotFile)
	require.False(t, cfg.UseDatabase(), "no DB_HOST means file-store mode")
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("WEBHOOK_URL", "http://example.com/hook")
	t.Setenv("FRONTEND_URL", "http://localhost:5173")

	cfg := Load()
	require.Equal(t, "9090", cfg.Port)
	require.True(t, cfg.UseDatabase())
	require.Equal(t, "http://example.com/hook", cfg.WebhookURL)
	require.Equal(t, "http://localhost:5173", cfg.FrontendURL)
}
