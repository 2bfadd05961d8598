// Package runlock keeps two cleanfolder runs from working on the same
// directory at once.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// ErrLocked is returned when another process holds the lock for the root.
var ErrLocked = errors.New("another cleanfolder run is already working on this directory")

// namespace for deriving lock file names from root paths.
var namespace = uuid.MustParse("6b0f6a8e-3c1d-4c55-9a53-2f4b1e7d9c10")

// Lock is a held run lock. The lock file lives outside the organized tree
// so it is never scanned, moved or pruned.
type Lock struct {
	path string
	fl   *flock.Flock
}

// Acquire takes the lock for root in the system temp directory.
func Acquire(root string) (*Lock, error) {
	return AcquireIn(os.TempDir(), root)
}

// AcquireIn takes the lock for root with the lock file in dir. It does not
// wait: if the lock is held it fails with ErrLocked.
func AcquireIn(dir, root string) (*Lock, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	path := filepath.Join(dir, "cleanfolder-"+uuid.NewSHA1(namespace, []byte(abs)).String()+".lock")
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, abs)
	}
	return &Lock{path: path, fl: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	_ = os.Remove(l.path)
	return nil
}
