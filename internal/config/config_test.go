package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Account = "Intesa Business"
	cfg.Delimiter = ";"
	cfg.Strict = true

	path := filepath.Join(t.TempDir(), "intesa2actual.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Intesa Business", got.Account)
	assert.Equal(t, ";", got.Delimiter)
	assert.True(t, got.Strict)
	assert.Equal(t, cfg.Listen, got.Listen)
	assert.Equal(t, cfg.LogLevel, got.LogLevel)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Intesa SanPaolo", cfg.Account)
	assert.Empty(t, cfg.Delimiter)
	assert.False(t, cfg.Strict)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default()
	path := filepath.Join(t.TempDir(), "intesa2actual.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "account: Intesa SanPaolo")
	assert.Contains(t, contents, ":8080")
	assert.Contains(t, contents, "log_level: info")
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("INTESA2ACTUAL_ACCOUNT", "Conto Famiglia")
	t.Setenv("INTESA2ACTUAL_LISTEN", ":9090")
	t.Setenv("INTESA2ACTUAL_LOG_LEVEL", "debug")

	cfg := Default()
	LoadEnv(cfg)

	assert.Equal(t, "Conto Famiglia", cfg.Account)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEnv_EmptyKeepsConfig(t *testing.T) {
	cfg := Default()
	LoadEnv(cfg)
	assert.Equal(t, "Intesa SanPaolo", cfg.Account)
}

func TestParseDelimiter(t *testing.T) {
	d, err := ParseDelimiter("")
	require.NoError(t, err)
	assert.Zero(t, d)

	d, err = ParseDelimiter(";")
	require.NoError(t, err)
	assert.Equal(t, ';', d)

	d, err = ParseDelimiter(",")
	require.NoError(t, err)
	assert.Equal(t, ',', d)

	d, err = ParseDelimiter("tab")
	require.NoError(t, err)
	assert.Equal(t, '\t', d)

	_, err = ParseDelimiter("||")
	assert.Error(t, err)
}
