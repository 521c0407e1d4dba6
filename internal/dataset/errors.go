package dataset

import "errors"

var (
	// ErrUnknownSeparator is returned when a metadata line has neither ':' nor '='.
	ErrUnknownSeparator = errors.New("dataset: unknown metadata separator")

	// ErrMalformedRow is returned when a data row cannot be parsed or its
	// column count differs from the header.
	ErrMalformedRow = errors.New("dataset: malformed row")

	// ErrMissingFile wraps I/O failures while reading or writing data files.
	ErrMissingFile = errors.New("dataset: file not accessible")

	// ErrNoData is returned when a dataset is written before any data was created.
	ErrNoData = errors.New("dataset: no data")
)
