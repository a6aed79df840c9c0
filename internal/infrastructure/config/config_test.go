package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "asphalt-go", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.False(t, cfg.Pricing.ApplyFormDefaults)
	assert.Equal(t, 2400.0, cfg.Pricing.DefaultDensity)
	assert.Equal(t, 85.0, cfg.Pricing.DefaultPricePerTon)

	d := cfg.Pricing.Defaults()
	assert.False(t, d.ApplyFormDefaults)
	assert.Equal(t, 2.5, d.LaborCostPerSqFt)
	assert.Equal(t, 1.5, d.BaseCostPerSqFt)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ASPHALT_SERVER_PORT", "9090")
	t.Setenv("ASPHALT_SERVER_REQUEST_TIMEOUT", "3s")
	t.Setenv("ASPHALT_PRICING_APPLY_FORM_DEFAULTS", "true")
	t.Setenv("ASPHALT_DATABASE_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.Pricing.ApplyFormDefaults)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asphalt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7000
log:
  level: debug
  format: console
pricing:
  default_price_per_ton: 92.5
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 92.5, cfg.Pricing.DefaultPricePerTon)
	assert.Equal(t, 2.5, cfg.Pricing.DefaultLaborPerSqFt)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Setenv("ASPHALT_LOG_FORMAT", "xml")
	t.Setenv("ASPHALT_PRICING_DEFAULT_DENSITY", "0")
	t.Setenv("ASPHALT_RATE_LIMIT_BURST", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
	assert.Contains(t, err.Error(), "pricing.default_density")
	assert.Contains(t, err.Error(), "rate_limit")
}
