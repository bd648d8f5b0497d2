package run

import "errors"

var (
	ErrRunNotFound = errors.New("run not found")

	// ErrRunAlreadyInProgress is returned when another run holds the lock.
	// Nothing has been mutated when this surfaces.
	ErrRunAlreadyInProgress = errors.New("a pipeline run is already in progress")
)
