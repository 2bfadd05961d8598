package config

import (
	"path/filepath"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))

	// 1. Write default config
	cfgPath := filepath.Join(tmp, "cleanfolder", "config.toml")
	if err := WriteDefault(cfgPath); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	// 2. The default file must load and validate as is
	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// 3. Defaults applied for the commented-out history path
	want := filepath.Join(tmp, "data", "cleanfolder", "history.db")
	if cfg.History.Path != want {
		t.Errorf("expected history path %q, got %q", want, cfg.History.Path)
	}

	// 4. And it maps onto the organizer
	org, err := cfg.Organizer()
	if err != nil {
		t.Fatalf("Organizer: %v", err)
	}
	if org.SkipUnpack || org.SkipPrune {
		t.Errorf("expected unpack and prune enabled, got %+v", org)
	}
}
