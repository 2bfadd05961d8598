package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInit_WritesDefault(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "cfg", "config.toml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = execute(t, "config", "init", "--force", path)
	require.NoError(t, err)
}

func TestConfigTest_Valid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[organize]\ncollision = \"overwrite\"\n[history]\nenabled = false\n")

	out, err := execute(t, "config", "test", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Collision:  overwrite")
	assert.Contains(t, out, "History:    disabled")
	assert.Contains(t, out, "Configuration valid!")
}

func TestConfigTest_Invalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[log]\nlevel = \"${CLEANFOLDER_TEST_NONEXISTENT_LEVEL}\"\nformat = \"xml\"\n")

	out, err := execute(t, "config", "test", path)
	require.Error(t, err)
	assert.Contains(t, out, "Missing environment variables:")
	assert.Contains(t, out, "CLEANFOLDER_TEST_NONEXISTENT_LEVEL")
	assert.Contains(t, out, "log.format")
	assert.Contains(t, out, "Configuration Summary:")
	assert.Contains(t, out, "(xml)")
	assert.NotContains(t, out, "Configuration valid!")
}

func TestConfigInit_ThenTestAndRun(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	_, err := execute(t, "config", "init", path)
	require.NoError(t, err)

	out, err := execute(t, "config", "test", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Configuration valid!")

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "report.pdf"), "pdf")
	_, err = execute(t, "--config", path, root)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "documents", "report.pdf"))
}

func TestConfigTest_NothingFound(t *testing.T) {
	if _, err := os.Stat("/etc/cleanfolder/config.toml"); err == nil {
		t.Skip("system config present")
	}
	isolate(t)

	_, err := execute(t, "config", "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config not found")
}
