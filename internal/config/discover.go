// internal/config/discover.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfig names the environment variable that points at a config file.
const EnvConfig = "CLEANFOLDER_CONFIG"

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "cleanfolder", "config.toml")
}

// DefaultHistoryPath returns the XDG-compliant default history database path.
func DefaultHistoryPath() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), "cleanfolder", "history.db")
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, fallback)
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. CLEANFOLDER_CONFIG environment variable
//  2. ./cleanfolder.toml (current directory)
//  3. $XDG_CONFIG_HOME/cleanfolder/config.toml
//  4. /etc/cleanfolder/config.toml
//
// When none exists the error wraps ErrNotFound.
func Discover() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfig, envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./cleanfolder.toml",
		DefaultPath(),
		"/etc/cleanfolder/config.toml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(paths, ", "))
}
