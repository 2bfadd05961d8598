package history

import "errors"

var (
	// ErrNotFound indicates no run matches the given id or prefix.
	ErrNotFound = errors.New("run not found")

	// ErrAmbiguous indicates a run id prefix matches more than one run.
	ErrAmbiguous = errors.New("run id prefix is ambiguous")
)
