// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/cleanfolder/internal/organizer"
)

// Config is the root configuration structure.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Organize OrganizeConfig `toml:"organize"`
	History  HistoryConfig  `toml:"history"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type OrganizeConfig struct {
	Collision      string `toml:"collision"`
	UnpackArchives bool   `toml:"unpack_archives"`
	PruneEmpty     bool   `toml:"prune_empty"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Organize: OrganizeConfig{
			Collision:      string(organizer.CollisionRename),
			UnpackArchives: true,
			PruneEmpty:     true,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    DefaultHistoryPath(),
		},
	}
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, unknown, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: append(unknown, cfg.Validate()...)}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, ignoring
// unresolved variables and validation errors. Used by `config test` to show
// what was parsed.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, _, err := load(path)
	return cfg, err
}

// load returns the parsed config, unresolved variables and unknown keys.
func load(path string) (*Config, []string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	// Decode over the defaults so omitted keys keep their default value.
	cfg := Default()
	md, err := toml.Decode(content, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, fmt.Sprintf("%s: unknown key", key))
	}

	cfg.applyDefaults()
	return cfg, missing, unknown, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Organize.Collision == "" {
		c.Organize.Collision = string(organizer.CollisionRename)
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath()
	}
	c.History.Path = expandHome(c.History.Path)
}

// Organizer converts the [organize] section into an organizer.Config.
func (c *Config) Organizer() (organizer.Config, error) {
	collision, err := organizer.ParseCollision(c.Organize.Collision)
	if err != nil {
		return organizer.Config{}, err
	}
	return organizer.Config{
		Collision:  collision,
		SkipUnpack: !c.Organize.UnpackArchives,
		SkipPrune:  !c.Organize.PruneEmpty,
	}, nil
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces variable references with environment values.
// Unresolved references are left in place and reported in missing. Comment
// lines are copied as they are.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines[i] = envVarPattern.ReplaceAllStringFunc(line, func(match string) string {
			parts := envVarPattern.FindStringSubmatch(match)
			name, op, arg := parts[1], parts[2], parts[3]

			value, ok := os.LookupEnv(name)
			switch op {
			case ":-":
				if !ok || value == "" {
					return arg
				}
				return value
			case ":?":
				if !ok || value == "" {
					missing = append(missing, name+": "+arg)
					return match
				}
				return value
			}

			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		})
	}
	return strings.Join(lines, "\n"), missing
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
