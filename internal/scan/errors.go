package scan

import "errors"

// ErrNotDirectory indicates the scan root is not a directory.
var ErrNotDirectory = errors.New("not a directory")
