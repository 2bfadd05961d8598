// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/vmunix/cleanfolder/internal/organizer"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format: must be one of text, json; got %q", c.Log.Format))
	}

	if _, err := organizer.ParseCollision(c.Organize.Collision); err != nil {
		errs = append(errs, fmt.Sprintf("organize.collision: must be one of rename, overwrite, fail; got %q", c.Organize.Collision))
	}

	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, "history.path: required when history is enabled")
	}

	return errs
}
