package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "strict", cfg.Unknown)
	assert.Equal(t, "strict", cfg.Equality)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gorecord.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: ja\nunknown: strip\nlog:\n  level: debug\n"), 0o644))
	t.Setenv("GORECORD_EQUALITY", "lenient")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "ja", cfg.Language)
	assert.Equal(t, "strip", cfg.Unknown)
	assert.Equal(t, "lenient", cfg.Equality)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gorecord.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unknown: maybe\n"), 0o644))

	_, err := Load(viper.New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown must be strict or strip")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
