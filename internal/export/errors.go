package export

import "errors"

var (
	// ErrThreadsDirMissing is returned before any output is written when the
	// store has no threads directory.
	ErrThreadsDirMissing = errors.New("threads directory not found")

	// ErrOutputLocked is returned when another export holds the output lock.
	ErrOutputLocked = errors.New("output directory is locked by another export")
)
