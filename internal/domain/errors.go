// Package domain holds cross-aggregate sentinels shared by the repository
// implementations and the services that consume them.
package domain

import "errors"

var (
	// ErrNotFound is returned by repositories instead of driver-specific
	// "no rows" errors.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a uniqueness violation, e.g. a duplicate email.
	ErrConflict = errors.New("conflict")
)
