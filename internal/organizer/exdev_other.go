//go:build !unix

package organizer

// Cross-volume renames are not recognised here; the rename error is returned as is.
func isEXDEV(error) bool { return false }
