package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.ServiceURL)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Equal(t, "command", cfg.Speech.Engine)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "databrief.yaml")
	content := `
service_url: https://briefing.internal:9443
export_dir: /tmp/briefings
speech:
  engine: online
  language: en
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "https://briefing.internal:9443", cfg.ServiceURL)
	assert.Equal(t, "/tmp/briefings", cfg.ExportDir)
	assert.Equal(t, "online", cfg.Speech.Engine)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
