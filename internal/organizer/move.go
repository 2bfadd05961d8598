// internal/organizer/move.go
package organizer

import (
	"fmt"
	"io"
	"os"
)

// renameFunc is swapped in tests to simulate EXDEV.
var renameFunc = os.Rename

// moveFile renames src to dst. When the two are on different filesystems
// it falls back to copy then remove.
func moveFile(src, dst string) error {
	err := renameFunc(src, dst)
	if err == nil || !isEXDEV(err) {
		return err
	}

	if err := copyFile(src, dst); err != nil {
		return &CrossDeviceError{Src: src, Dst: dst, Err: err}
	}
	if err := os.Remove(src); err != nil {
		return &CrossDeviceError{Src: src, Dst: dst, Err: fmt.Errorf("remove source: %w", err)}
	}
	return nil
}

// copyFile copies src to dst keeping the permission bits.
// A partial dst is removed on failure.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = srcFile.Close() }()

	info, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("copy content: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		_ = dstFile.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("sync: %w", err)
	}
	return dstFile.Close()
}
