package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/de-tools/rate-atlas/pkg/services/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.stlouisfed.org/fred", cfg.Fred.BaseURL)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, -0.05, cfg.Detection.DropThreshold)
	assert.Equal(t, 180, cfg.Detection.MinSpacingDays)
	assert.Equal(t, 3, cfg.Detection.MaxCycles)
	assert.Equal(t, 24, cfg.Lag.LookaheadMonths)
	assert.Equal(t, -0.25, cfg.Lag.DeclineThreshold)
	assert.Equal(t, 12, cfg.Growth.WindowMonths)

	settings, err := cfg.DashboardSettings()
	require.NoError(t, err)
	assert.Equal(t, dashboard.DefaultSettings(), settings)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "rate-atlas.yaml", `fred:
  api_key: "secret"
  start_date: "2000-01-01"
cache:
  ttl: "2h"
  backend: "duckdb"
detection:
  max_cycles: 4
cycles:
  - color: "#111111"
  - color: "#222222"
views:
  - name: "mortgages"
    title: "Mortgages"
    window_months: 6
    metric: "lag"
    series:
      - id: "MORTGAGE30US"
        metric: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Fred.APIKey)
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, CacheBackendDuckDB, cfg.Cache.Backend)

	settings, err := cfg.DashboardSettings()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), settings.Start)
	assert.Equal(t, 4, settings.Detection.MaxCycles)
	assert.Equal(t, []domain.CycleStyle{{Color: "#111111"}, {Color: "#222222"}}, settings.CycleStyles)

	require.Len(t, settings.Views, 1)
	view := settings.Views[0]
	assert.Equal(t, "mortgages", view.Name)
	assert.Equal(t, 6, view.WindowMonths)
	assert.Equal(t, domain.MetricLag, view.Metric)
	require.Len(t, view.Series, 1)
	assert.Equal(t, "MORTGAGE30US", view.Series[0].Label)
	assert.True(t, view.Series[0].Metric)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("RATE_ATLAS_DETECTION_MAX_CYCLES", "5")
	t.Setenv("RATE_ATLAS_SERVER_PORT", "9090")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Detection.MaxCycles)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDashboardSettings_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad start date", func(c *Config) { c.Fred.StartDate = "01/01/2000" }},
		{"zero lookahead", func(c *Config) { c.Lag.LookaheadMonths = 0 }},
		{"zero max cycles", func(c *Config) { c.Detection.MaxCycles = 0 }},
		{"negative max cycles", func(c *Config) { c.Detection.MaxCycles = -1 }},
		{"unknown metric", func(c *Config) {
			c.Views = []ViewConfig{{Name: "x", WindowMonths: 12, Metric: "median"}}
		}},
		{"series without id", func(c *Config) {
			c.Views = []ViewConfig{{Name: "x", WindowMonths: 12, Series: []SeriesConfig{{Label: "X"}}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)

			_, err = cfg.DashboardSettings()
			assert.Error(t, err)
		})
	}
}

func TestDashboardSettings_GrowthWindowAppliesToDefaultViews(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Growth.WindowMonths = 6

	settings, err := cfg.DashboardSettings()
	require.NoError(t, err)
	for _, v := range settings.Views {
		if v.Metric == domain.MetricGrowth {
			assert.Equal(t, 6, v.WindowMonths, v.Name)
		}
	}
}
