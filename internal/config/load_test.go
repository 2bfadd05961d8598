// internal/config/load_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/cleanfolder/internal/organizer"
)

// writeConfig writes content to a temp config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644), "failed to write test config")
	return cfgPath
}

func TestLoad_Valid(t *testing.T) {
	cfgPath := writeConfig(t, `
[log]
level = "debug"
format = "json"

[organize]
collision = "overwrite"
unpack_archives = false

[history]
enabled = false
path = "/var/lib/cleanfolder/h.db"
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "overwrite", cfg.Organize.Collision)
	assert.False(t, cfg.Organize.UnpackArchives)
	assert.True(t, cfg.Organize.PruneEmpty, "omitted key keeps its default")
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "/var/lib/cleanfolder/h.db", cfg.History.Path)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	cfgPath := writeConfig(t, "")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "rename", cfg.Organize.Collision)
	assert.True(t, cfg.Organize.UnpackArchives)
	assert.True(t, cfg.Organize.PruneEmpty)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "/xdg/data/cleanfolder/history.db", cfg.History.Path)
}

func TestLoad_EmptyStringsFallBackToDefaults(t *testing.T) {
	cfgPath := writeConfig(t, `
[log]
level = ""

[organize]
collision = ""
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "rename", cfg.Organize.Collision)
}

func TestLoad_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfgPath := writeConfig(t, `
[history]
path = "~/cleanfolder/h.db"
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cleanfolder", "h.db"), cfg.History.Path)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	cfgPath := writeConfig(t, `
[history]
path = "${CLEANFOLDER_TEST_NONEXISTENT_DIR}/h.db"
`)

	_, err := Load(cfgPath)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"CLEANFOLDER_TEST_NONEXISTENT_DIR"}, cfgErr.Missing)
	assert.Equal(t, cfgPath, cfgErr.Path)
}

func TestLoad_EnvVarSubstituted(t *testing.T) {
	t.Setenv("CLEANFOLDER_TEST_COLLISION", "fail")
	cfgPath := writeConfig(t, `
[organize]
collision = "${CLEANFOLDER_TEST_COLLISION}"
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "fail", cfg.Organize.Collision)
}

func TestLoad_EnvVarDefault(t *testing.T) {
	os.Unsetenv("OPTIONAL_LEVEL")
	cfgPath := writeConfig(t, `
[log]
level = "${OPTIONAL_LEVEL:-warn}"
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_ValidationError(t *testing.T) {
	cfgPath := writeConfig(t, `
[log]
level = "verbose"

[organize]
collision = "skip"
`)

	_, err := Load(cfgPath)
	require.Error(t, err)
	if !strings.Contains(err.Error(), "log.level") {
		t.Errorf("expected log.level in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "organize.collision") {
		t.Errorf("expected organize.collision in error, got %v", err)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	cfgPath := writeConfig(t, `
[organize]
colission = "fail"
`)

	_, err := Load(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "organize.colission: unknown key")
}

func TestLoad_SyntaxError(t *testing.T) {
	cfgPath := writeConfig(t, `[log`)

	_, err := Load(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadWithoutValidation(t *testing.T) {
	cfgPath := writeConfig(t, `
[log]
level = "verbose"
`)

	cfg, err := LoadWithoutValidation(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "verbose" {
		t.Errorf("expected level verbose, got %s", cfg.Log.Level)
	}
}

func TestConfig_Organizer(t *testing.T) {
	cfg := Default()
	cfg.Organize.Collision = "Fail"
	cfg.Organize.UnpackArchives = false
	cfg.Organize.PruneEmpty = false

	got, err := cfg.Organizer()
	require.NoError(t, err)
	assert.Equal(t, organizer.Config{
		Collision:  organizer.CollisionFail,
		SkipUnpack: true,
		SkipPrune:  true,
	}, got)

	cfg.Organize.Collision = "nope"
	_, err = cfg.Organizer()
	assert.ErrorIs(t, err, organizer.ErrInvalidCollision)
}
