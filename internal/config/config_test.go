package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "current-user", cfg.ViewerID)
	assert.Equal(t, 500*time.Millisecond, cfg.FilterDelay)
	assert.Equal(t, time.Second, cfg.SaveDelay)
	assert.Equal(t, PolicyLastWriteWins, cfg.PendingPolicy)
	assert.True(t, cfg.EnableMetrics)
}

func TestLoadConfigNormalizesEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", " Dev ")
	t.Setenv("PENDING_POLICY", "Reject-While-Pending")
	t.Setenv("SIMULATED_FILTER_DELAY", "0s")

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, PolicyRejectWhilePending, cfg.PendingPolicy)
	assert.Zero(t, cfg.FilterDelay)
}

func TestLoadConfigRejectsInvalidFailureRate(t *testing.T) {
	t.Setenv("SIMULATED_FAILURE_RATE", "1.5")

	_, err := LoadConfig(missingEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIMULATED_FAILURE_RATE")
}

func TestLoadConfigRejectsUnknownPolicy(t *testing.T) {
	t.Setenv("PENDING_POLICY", "first-write-wins")

	_, err := LoadConfig(missingEnvFile(t))
	require.Error(t, err)
}
