package core

import "errors"

// Errors shared by the lab runtime and the lab models.
var (
	// ErrInvalidIdentifier is returned when a student identifier is not a positive integer.
	ErrInvalidIdentifier = errors.New("core: identifier must be a positive integer")

	// ErrSampleNotSelected is returned when data is requested before a sample is chosen.
	ErrSampleNotSelected = errors.New("core: sample not selected")

	// ErrUnknownSample is returned when the selected sample is not in the lab catalog.
	ErrUnknownSample = errors.New("core: unknown sample")

	// ErrInvalidParameter is returned when a parameter holds a value of the wrong kind.
	ErrInvalidParameter = errors.New("core: invalid parameter")
)
