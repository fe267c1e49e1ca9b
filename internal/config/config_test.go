package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/internal/risk"
)

// chdir moves the test into an empty directory so no stray .env or
// config.yaml is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, 32610, cfg.Incident.SourceSRID)
	assert.Equal(t, 0.7, cfg.Risk.ProximityRadiusKm)
	assert.Equal(t, 1.0, cfg.Risk.CorridorRadiusKm)
	assert.Equal(t, 200, cfg.Risk.ModerateThreshold)
	assert.Equal(t, 600, cfg.Risk.HighThreshold)
	assert.Equal(t, 4, cfg.Scoring.Workers)
	assert.Equal(t, time.Duration(0), cfg.Zone.RefreshInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, risk.DefaultPolicy(), cfg.Policy())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t)
	t.Setenv("PORT", "9090")
	t.Setenv("RISK_PROXIMITY_RADIUS_KM", "0.5")
	t.Setenv("RISK_HIGH_THRESHOLD", "800")
	t.Setenv("SCORING_WORKERS", "8")
	t.Setenv("ZONE_REFRESH_INTERVAL", "15m")
	t.Setenv("INCIDENT_FEED_PATH", "/data/crimes.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 0.5, cfg.Risk.ProximityRadiusKm)
	assert.Equal(t, 800, cfg.Risk.HighThreshold)
	assert.Equal(t, 8, cfg.Scoring.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Zone.RefreshInterval)
	assert.Equal(t, "/data/crimes.json", cfg.Incident.FeedPath)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RISK_CORRIDOR_RADIUS_KM=2.5\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("RISK_CORRIDOR_RADIUS_KM") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.Risk.CorridorRadiusKm)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdir(t)
	yaml := "risk:\n  moderate_threshold: 150\nlog:\n  format: console\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 150, cfg.Risk.ModerateThreshold)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	chdir(t)
	base, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "zero proximity radius", mutate: func(c *Config) { c.Risk.ProximityRadiusKm = 0 }},
		{name: "negative corridor radius", mutate: func(c *Config) { c.Risk.CorridorRadiusKm = -1 }},
		{name: "inverted thresholds", mutate: func(c *Config) { c.Risk.ModerateThreshold = 700 }},
		{name: "no workers", mutate: func(c *Config) { c.Scoring.Workers = 0 }},
		{name: "negative refresh", mutate: func(c *Config) { c.Zone.RefreshInterval = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *base
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, eris.Is(err, domain.ErrInvalidArgument))
		})
	}
}

func TestInitLogger(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))

	assert.Error(t, InitLogger(LogConfig{Level: "loud"}))
}
