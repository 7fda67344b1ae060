package am

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "_", cfg.Engine.PrivatePrefix)
	assert.Equal(t, []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}, cfg.Engine.DateLayouts)
	assert.Equal(t, "sentences.csv", cfg.Input.Table)
	assert.Equal(t, "source.json", cfg.Input.Source)
	assert.Equal(t, "table", cfg.Output.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
engine:
  private_prefix: "tmp_"
input:
  table: rules.yaml
output:
  format: json
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "tmp_", cfg.Engine.PrivatePrefix)
	assert.Equal(t, "rules.yaml", cfg.Input.Table)
	assert.Equal(t, "json", cfg.Output.Format)
	// Unset keys fall back to defaults.
	assert.Equal(t, "source.json", cfg.Input.Source)
	assert.NotEmpty(t, cfg.Engine.DateLayouts)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadCaches(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)

	Reset()
	third, err := Load()
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}
