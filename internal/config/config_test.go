package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: ":9090"
database:
  type: "sqlite"
  path: "data/app.db"
app_url: "https://example.com"
providers:
  timeout_seconds: 30
  openrouter:
    model: "openai/gpt-4o-mini"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "data/app.db", cfg.Database.Path)
	assert.Equal(t, "https://example.com", cfg.AppURL)
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout())
	assert.Equal(t, "openai/gpt-4o-mini", cfg.Providers.OpenRouter.Model)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/app"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 15*time.Second, cfg.ProviderTimeout())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
