package organizer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/cleanfolder/internal/archive"
	"github.com/vmunix/cleanfolder/internal/category"
)

// unpack extracts src into root/archives/<normalized base name> and deletes
// src on success. In a dry run the archive is only decoded.
//
// When the archive cannot be read (unknown format, corrupt content, unsafe
// entry paths, or src vanished) the extraction folder is removed again and
// src stays where it is. That is reported as ActionUnpackFailed, not as an
// error. If the folder cannot be removed a *CleanupError is added to
// Result.Errors.
func (p *pass) unpack(src string) error {
	dir := filepath.Join(p.root, string(category.Archives))
	target := filepath.Join(dir, folderName(filepath.Base(src)))

	var size int64
	if info, err := os.Lstat(src); err == nil {
		size = info.Size()
	}

	if p.cfg.DryRun {
		return p.planUnpack(src, target, size)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s folder: %w", category.Archives, err)
	}

	_, statErr := os.Lstat(target)
	created := errors.Is(statErr, fs.ErrNotExist)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("create extraction folder: %w", err)
	}

	if err := archive.Extract(src, target); err != nil {
		if !isUnpackFailure(err) {
			return fmt.Errorf("unpack %s: %w", src, err)
		}
		p.log.Warn("unpack failed, archive left in place", "archive", src, "error", err)
		p.cleanup(src, target, created)
		p.record(Action{Kind: ActionUnpackFailed, Category: category.Archives, Source: src, Dest: target, Size: size, Err: err})
		return nil
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove unpacked archive: %w", err)
	}
	p.log.Debug("unpacked", "archive", src, "dest", target)
	p.record(Action{Kind: ActionUnpacked, Category: category.Archives, Source: src, Dest: target, Size: size})
	return nil
}

// planUnpack decodes src without writing so the plan reports the same
// outcome a real run would.
func (p *pass) planUnpack(src, target string, size int64) error {
	if err := archive.Check(src); err != nil {
		if !isUnpackFailure(err) {
			return fmt.Errorf("check %s: %w", src, err)
		}
		p.record(Action{Kind: ActionUnpackFailed, Category: category.Archives, Source: src, Dest: target, Size: size, Err: err})
		return nil
	}
	p.record(Action{Kind: ActionUnpacked, Category: category.Archives, Source: src, Dest: target, Size: size})
	return nil
}

// folderName is the extraction folder for an archive file name. It is never
// empty or dot-only, so extraction always gets its own folder.
func folderName(base string) string {
	name := cleanName(category.TrimArchiveExt(base))
	if strings.Trim(name, ".") == "" {
		return placeholder
	}
	return name
}

// isUnpackFailure separates a bad or missing archive from filesystem errors
// on the destination side, which are fatal.
func isUnpackFailure(err error) bool {
	return errors.Is(err, archive.ErrUnsupported) ||
		errors.Is(err, archive.ErrCorrupt) ||
		errors.Is(err, archive.ErrPathTraversal) ||
		errors.Is(err, fs.ErrNotExist)
}

// cleanup removes the extraction folder after a failed unpack. A folder this
// pass created goes with whatever was partially extracted; one that existed
// before is only removed when empty.
func (p *pass) cleanup(src, target string, created bool) {
	var err error
	if created {
		err = os.RemoveAll(target)
	} else {
		err = os.Remove(target)
	}
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return
	}

	cerr := &CleanupError{Archive: src, Dir: target, Err: err}
	p.log.Warn("extraction folder left behind", "dir", target, "error", err)
	p.result.Errors = append(p.result.Errors, cerr)
}
