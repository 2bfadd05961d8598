package archive

import "errors"

var (
	// ErrUnsupported indicates the file name does not match a known archive format.
	ErrUnsupported = errors.New("unsupported archive format")

	// ErrCorrupt indicates the archive could not be decoded.
	ErrCorrupt = errors.New("corrupt archive")

	// ErrPathTraversal indicates an entry would be written outside the destination.
	ErrPathTraversal = errors.New("path traversal detected")
)
