package raman

import "errors"

var (
	// ErrFitDidNotConverge is recoverable: the guess is kept and the caller
	// may retry with other positions or fewer peaks.
	ErrFitDidNotConverge = errors.New("raman: fit did not converge")
	ErrEmptyRange        = errors.New("raman: no data points in the selected range")
	ErrNoFit             = errors.New("raman: no fit available")
	ErrNoGuess           = errors.New("raman: no initial guess available")
	ErrNoPeaks           = errors.New("raman: at least one peak is required")
	ErrUnknownParameter  = errors.New("raman: unknown parameter name")
	ErrLengthMismatch    = errors.New("raman: wavenumbers and intensities differ in length")
	ErrTooFewPoints      = errors.New("raman: fewer data points than fit parameters")
	ErrMalformedSpectrum = errors.New("raman: malformed spectrum line")
)
