package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func TestLoadConfig_CreatesDefault(t *testing.T) {
	dir := isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "deckwright", "data"), cfg.DataDir)
	assert.Equal(t, "en", cfg.Locale)
	assert.Nil(t, cfg.TabooSetID())

	_, err = os.Stat(filepath.Join(dir, "config", "deckwright", "config.toml"))
	assert.NoError(t, err)
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	isolate(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(GetConfigFilePath()), 0755))
	require.NoError(t, os.WriteFile(GetConfigFilePath(), []byte(`
data_dir = "/srv/cards"
default_taboo_set = 8
locale = "fr"

[collection]
core = 2
eoep = 1
`), 0644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/cards", cfg.DataDir)
	assert.Equal(t, "fr", cfg.Locale)
	assert.Equal(t, "info", cfg.LogLevel, "missing keys keep their defaults")
	require.NotNil(t, cfg.TabooSetID())
	assert.Equal(t, 8, *cfg.TabooSetID())
	assert.Equal(t, map[string]int{"core": 2, "eoep": 1}, cfg.Collection)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("DECKWRIGHT_DATA_DIR", "/tmp/cards")
	t.Setenv("DECKWRIGHT_TABOO_SET", "5")
	t.Setenv("DECKWRIGHT_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cards", cfg.DataDir)
	assert.Equal(t, 5, cfg.TabooSet)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(GetConfigFilePath()), 0755))
	require.NoError(t, os.WriteFile(GetConfigFilePath(), []byte("data_dir = "), 0644))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Collection = map[string]int{"core": 1}
	require.NoError(t, Save(cfg))

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg.Collection, loaded.Collection)
}
