package sampler

import "errors"

var (
	// ErrInvalidArgument indicates a caller-supplied precondition was violated.
	ErrInvalidArgument = errors.New("sampler: invalid argument")

	// ErrStopped is returned by Stream when the visitor ends the walk early.
	ErrStopped = errors.New("sampler: stopped by visitor")
)
