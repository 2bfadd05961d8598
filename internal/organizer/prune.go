package organizer

import (
	"fmt"
	"os"
	"path/filepath"
)

// prune removes every empty directory below dir, children first. dir itself
// is kept. Directories that cannot be removed (usually because they are not
// empty) are skipped silently; symlinks are never followed.
func (p *pass) prune(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", dir, err)
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := p.prune(path); err != nil {
			return err
		}
		if err := os.Remove(path); err != nil {
			continue
		}
		p.log.Debug("pruned", "dir", path)
		p.record(Action{Kind: ActionPruned, Source: path})
	}
	return nil
}
