package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/bscript/pkg/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "entry: scripts/main.bs\ngas: 50\nlog_level: DEBUG\ntrace: true\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, filepath.Join(dir, "scripts", "main.bs"), cfg.Entry)
	assert.Equal(t, 50, cfg.Gas)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.Trace)
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, t.TempDir(), ""))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultEntry, cfg.Entry)
	assert.Equal(t, config.DefaultGas, cfg.Gas)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoadZeroGasDisablesLimit(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, t.TempDir(), "gas: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Gas)
}

func TestLoadValidation(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "entry: ''\ngas: -1\nlog_level: loud\n")

	_, err := config.Load(path)
	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Issues, 3)
	assert.Contains(t, err.Error(), "gas must be >= 0, got -1")
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := config.Load(writeConfig(t, t.TempDir(), "gass: 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindWalksUpwards(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "gas: 1\n")
	child := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(child, 0o755))

	found, err := config.Find(child)
	require.NoError(t, err)
	assert.Equal(t, want, found)

	cfg, err := config.Discover(child)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Gas)
}

func TestParseLevel(t *testing.T) {
	level, err := config.ParseLevel("info")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	_, err = config.ParseLevel("verbose")
	assert.Error(t, err)
}
