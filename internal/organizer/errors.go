// internal/organizer/errors.go
package organizer

import (
	"errors"
	"fmt"
)

var (
	// ErrDestinationExists indicates the target name is taken and the
	// collision policy is CollisionFail.
	ErrDestinationExists = errors.New("destination file already exists")

	// ErrDestinationIsDir indicates the target name is taken by a directory.
	ErrDestinationIsDir = errors.New("destination is a directory")

	// ErrInvalidCollision indicates an unknown collision policy name.
	ErrInvalidCollision = errors.New("invalid collision policy")
)

// CleanupError reports that the extraction folder of an archive that failed
// to unpack could not be removed. The archive itself is left untouched.
// It is recorded in Result.Errors and does not stop the run.
type CleanupError struct {
	Archive string
	Dir     string
	Err     error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup after failed unpack of %s: remove %s: %v", e.Archive, e.Dir, e.Err)
}

func (e *CleanupError) Unwrap() error { return e.Err }

// CrossDeviceError indicates a rename crossed filesystems and the
// copy fallback failed too.
type CrossDeviceError struct {
	Src string
	Dst string
	Err error
}

func (e *CrossDeviceError) Error() string {
	return fmt.Sprintf("cross-device move %q -> %q: %v", e.Src, e.Dst, e.Err)
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }
