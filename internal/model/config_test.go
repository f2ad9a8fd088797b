package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSec)
	assert.NotEmpty(t, cfg.SessionDBPath)
}

func TestLoadConfigReadsFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api:\n  base_url: https://dispatch.example.org/api\n  timeout_sec: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://dispatch.example.org/api", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.TimeoutSec)
}

func TestEnvOverridesBaseURL(t *testing.T) {
	t.Setenv("DISPATCH_API_URL", "http://10.0.0.5:5000/api")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:5000/api", cfg.API.BaseURL)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := &AppConfig{
		API:           APIConfig{BaseURL: "http://backend:9000/api", TimeoutSec: 12},
		Display:       DisplayConfig{Theme: "dark"},
		SessionDBPath: filepath.Join(t.TempDir(), "session.db"),
	}
	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want.API, got.API)
	assert.Equal(t, want.Display.Theme, got.Display.Theme)
	assert.Equal(t, want.SessionDBPath, got.SessionDBPath)
}
