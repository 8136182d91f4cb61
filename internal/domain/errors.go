package domain

import "errors"

var (
	// ErrEmptyInput is returned when no usable documents were supplied.
	ErrEmptyInput = errors.New("no usable documents: at least one non-blank document is required")
	// ErrEncoding is returned when a vectorization strategy fails to fit.
	ErrEncoding = errors.New("encoding failed")
	// ErrResourceUnavailable is returned when linguistic resources were not loaded.
	ErrResourceUnavailable = errors.New("linguistic resources unavailable")
	// ErrProjection marks a failed 2-D projection. It never aborts an encode request.
	ErrProjection = errors.New("projection could not be computed")
)
