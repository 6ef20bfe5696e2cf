package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 9050, cfg.Server.Port)
	assert.Equal(t, "ollama", cfg.Generation.Provider)
	assert.Equal(t, 50, cfg.Extraction.ContentFloor)
	assert.Equal(t, 3000, cfg.Extraction.ExtractionLimit)
	assert.Equal(t, 2000, cfg.Extraction.AnalysisLimit)
	assert.Equal(t, "24h", cfg.Uploads.Retention)
}

func TestLoadConfigFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lectio.toml")
	content := `
[server]
port = 8080

[extraction]
content_floor = 75
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 75, cfg.Extraction.ContentFloor)
	// Untouched sections keep their defaults
	assert.Equal(t, "ollama", cfg.Generation.Provider)
}

func TestLoadConfigLaterFileWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.toml")
	second := filepath.Join(dir, "second.toml")
	require.NoError(t, os.WriteFile(first, []byte("[server]\nport = 8001\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("[server]\nport = 8002\n"), 0644))

	cfg, err := LoadConfig(first, second)
	require.NoError(t, err)
	assert.Equal(t, 8002, cfg.Server.Port)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/lectio.toml")
	assert.Error(t, err)
}

func TestLoadConfigInvalidProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[generation]\nprovider = \"carrier-pigeon\"\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("LECTIO_OLLAMA_URL", "http://remote:11434")
	t.Setenv("BRAVE_API_KEY", "env-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://remote:11434", cfg.Generation.OllamaURL)
	assert.Equal(t, "env-secret", cfg.Search.BraveAPIKey)
}

func TestDurationHelpers(t *testing.T) {
	g := &GenerationConfig{AttemptTimeout: "30s"}
	assert.Equal(t, 30*time.Second, g.AttemptTimeoutDuration())

	g.AttemptTimeout = "garbage"
	assert.Equal(t, 120*time.Second, g.AttemptTimeoutDuration())

	u := &UploadsConfig{Retention: "48h"}
	assert.Equal(t, 48*time.Hour, u.RetentionDuration())

	u.Retention = ""
	assert.Equal(t, 24*time.Hour, u.RetentionDuration())

	s := &SearchConfig{Timeout: "3s"}
	assert.Equal(t, 3*time.Second, s.SearchTimeoutDuration())
}
