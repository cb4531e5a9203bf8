package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepspace-navigator/internal/hazard"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "navigator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7324", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, hazard.DefaultSampleConfig(), cfg.Sampling)
	assert.Equal(t, 45.0, cfg.Legality.MaxCrossingDeviationDeg)
	assert.Empty(t, cfg.Export.Passphrase)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:8080"
  shutdown_timeout: 3s
scenarios:
  root: /srv/scenarios
sampling:
  disc_sample_count: 32
legality:
  max_crossing_deviation_deg: 30
export:
  passphrase: from-file
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins, "untouched keys keep defaults")
	assert.Equal(t, "/srv/scenarios", cfg.Scenarios.Root)
	assert.Equal(t, "resources/scenario_names.json", cfg.Scenarios.NamesFile)
	assert.Equal(t, 32, cfg.Sampling.DiscSampleCount)
	assert.Equal(t, 24, cfg.Sampling.ZoneSampleDensity)
	assert.Equal(t, "from-file", cfg.Export.Passphrase)

	opts := cfg.PlannerOptions(nil)
	assert.InDelta(t, math.Pi/6, opts.Legality.MaxCrossingDeviation, 1e-12)
	assert.Equal(t, cfg.Sampling, opts.Samples)
}

func TestLoadPassphraseFromEnv(t *testing.T) {
	t.Setenv(PassphraseEnv, "from-env")
	path := writeConfig(t, "export:\n  passphrase: from-file\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Export.Passphrase)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "server:\n  port: 80\n"},
		{"bad yaml", "server: [\n"},
		{"bad address", "server:\n  addr: not-an-address\n"},
		{"too few disc samples", "sampling:\n  disc_sample_count: 2\n"},
		{"deviation above right angle", "legality:\n  max_crossing_deviation_deg: 120\n"},
		{"empty scenario root", "scenarios:\n  root: \"\"\n"},
		{"unknown log level", "log:\n  level: verbose\n"},
		{"negative iterations", "export:\n  iterations: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "warn", Format: "json"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":1`)
}
