package organizer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vmunix/cleanfolder/internal/category"
	"github.com/vmunix/cleanfolder/pkg/filename"
)

// relocate moves src to root/<c>/<normalized name>.
func (p *pass) relocate(src string, c category.Category) error {
	dir := filepath.Join(p.root, string(c))
	if !p.cfg.DryRun {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s folder: %w", c, err)
		}
	}

	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	dst, err := p.destination(dir, cleanName(filepath.Base(src)))
	if err != nil {
		return fmt.Errorf("relocate %s: %w", src, err)
	}

	if !p.cfg.DryRun {
		if err := moveFile(src, dst); err != nil {
			return fmt.Errorf("move %s: %w", src, err)
		}
	}
	p.log.Debug("moved", "src", src, "dest", dst, "category", c)

	p.record(Action{
		Kind:     ActionMoved,
		Category: c,
		Source:   src,
		Dest:     dst,
		Size:     info.Size(),
	})
	return nil
}

// destination applies the collision policy to dir/name.
func (p *pass) destination(dir, name string) (string, error) {
	dst := filepath.Join(dir, name)

	taken, isDir, err := p.taken(dst)
	if err != nil {
		return "", err
	}
	if !taken {
		p.claim(dst)
		return dst, nil
	}

	switch p.cfg.Collision {
	case CollisionOverwrite:
		if isDir {
			return "", fmt.Errorf("%w: %s", ErrDestinationIsDir, dst)
		}
		return dst, nil
	case CollisionFail:
		return "", fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	}

	for i := 1; ; i++ {
		candidate := filepath.Join(dir, numbered(name, i))
		taken, _, err := p.taken(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			p.claim(candidate)
			return candidate, nil
		}
	}
}

// taken reports whether path exists on disk or was claimed earlier in a dry run.
func (p *pass) taken(path string) (taken, isDir bool, err error) {
	if _, ok := p.reserved[path]; ok {
		return true, false, nil
	}
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return true, info.IsDir(), nil
}

func (p *pass) claim(path string) {
	if p.cfg.DryRun {
		p.reserved[path] = struct{}{}
	}
}

// placeholder stands in for a base name that normalizes to nothing.
const placeholder = "_"

// cleanName normalizes a file name. A base that transliterates to nothing
// becomes the placeholder: "ь.txt" -> "_.txt", "ь" -> "_". Dotfiles keep
// their empty base.
func cleanName(name string) string {
	clean := filename.Normalize(name)
	base, _, _ := strings.Cut(name, ".")
	cleanBase, _, _ := strings.Cut(clean, ".")
	if base != "" && cleanBase == "" {
		return placeholder + clean
	}
	return clean
}

// numbered inserts _n before the extension tail, the same tail Normalize
// keeps: "photo.tar.gz" -> "photo_1.tar.gz", "note" -> "note_1".
// Dotfiles keep their leading dot: ".env" -> ".env_1".
func numbered(name string, n int) string {
	suffix := "_" + strconv.Itoa(n)
	base, tail, hasDot := strings.Cut(name, ".")
	if !hasDot || base == "" {
		return name + suffix
	}
	return base + suffix + "." + tail
}
