// Package raman fits sums of Lorentzian lines, optionally on a linear
// background, to Raman spectra.
package raman

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// State is the progress of a fitting session
type State int

const (
	Idle State = iota
	RangeSelected
	GuessReady
	Fitted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RangeSelected:
		return "range_selected"
	case GuessReady:
		return "guess_ready"
	case Fitted:
		return "fitted"
	default:
		return "unknown"
	}
}

// curveOversampling is the resampling factor of fitted and guessed curves
const curveOversampling = 5

// FitOptions controls a single fit
type FitOptions struct {
	// Peaks is the number of lines detected automatically
	Peaks int
	// Fixed names parameters reset to their initial guess after the fit,
	// as position_<i>, height_<i> or width_<i>
	Fixed []string
	// RemoveBackground adds a linear baseline to the model
	RemoveBackground bool
	// Positions replace the automatic detection when set
	Positions []float64
	// MaxEvaluations caps the model evaluations, 10000 when zero
	MaxEvaluations int
}

// Fitter holds one spectrum and the state of its fit.
// It is not safe for concurrent use.
type Fitter struct {
	wavenumbers []float64
	intensities []float64

	lo, hi   float64
	hasRange bool
	x, y     []float64

	state  State
	guess  *Params
	fitted *Params
}

// NewFitter copies the spectrum. Every point is active until a range is selected.
func NewFitter(wavenumbers, intensities []float64) (*Fitter, error) {
	if len(wavenumbers) != len(intensities) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(wavenumbers), len(intensities))
	}
	if len(wavenumbers) == 0 {
		return nil, ErrEmptyRange
	}
	f := &Fitter{
		wavenumbers: append([]float64(nil), wavenumbers...),
		intensities: append([]float64(nil), intensities...),
	}
	f.x, f.y = f.wavenumbers, f.intensities
	return f, nil
}

func (f *Fitter) State() State {
	return f.state
}

// SelectRange activates the points with lo <= x <= hi. The selection is
// left unchanged when no point falls inside.
func (f *Fitter) SelectRange(lo, hi float64) error {
	var x, y []float64
	for i, w := range f.wavenumbers {
		if w >= lo && w <= hi {
			x = append(x, w)
			y = append(y, f.intensities[i])
		}
	}
	if len(x) == 0 {
		return fmt.Errorf("%w: [%g, %g]", ErrEmptyRange, lo, hi)
	}
	f.lo, f.hi, f.hasRange = lo, hi, true
	f.x, f.y = x, y
	f.resetTo(RangeSelected)
	return nil
}

// SelectAll activates the whole spectrum
func (f *Fitter) SelectAll() {
	f.hasRange = false
	f.x, f.y = f.wavenumbers, f.intensities
	f.resetTo(RangeSelected)
}

func (f *Fitter) resetTo(s State) {
	f.state = s
	f.guess = nil
	f.fitted = nil
}

// Active returns a copy of the points in the current selection
func (f *Fitter) Active() (x, y []float64) {
	return append([]float64(nil), f.x...), append([]float64(nil), f.y...)
}

// GuessPeaks estimates n peaks on the current selection, with a flat
// background at the lowest intensity. It returns nil when n <= 0.
func (f *Fitter) GuessPeaks(n int) *Params {
	if n <= 0 {
		return nil
	}
	f.guess = &Params{
		Peaks:      estimatePeaks(f.x, f.y, n),
		Background: estimateBackground(f.y),
	}
	f.fitted = nil
	f.state = GuessReady
	return f.guess.Clone()
}

// Guess returns the last initial guess, or nil
func (f *Fitter) Guess() *Params {
	if f.guess == nil {
		return nil
	}
	return f.guess.Clone()
}

// Result returns the fitted parameters, or nil
func (f *Fitter) Result() *Params {
	if f.fitted == nil {
		return nil
	}
	return f.fitted.Clone()
}

// Fit runs the least squares fit on the current selection. On
// ErrFitDidNotConverge the initial guess stays available and the previous
// result is discarded.
func (f *Fitter) Fit(opts FitOptions) (*Params, error) {
	n := opts.Peaks
	if len(opts.Positions) > 0 {
		n = len(opts.Positions)
	}
	if n <= 0 {
		return nil, ErrNoPeaks
	}
	fixed, err := parseFixed(opts.Fixed, n)
	if err != nil {
		return nil, err
	}

	guess := &Params{}
	if len(opts.Positions) > 0 {
		guess.Peaks = peaksAt(f.x, f.y, opts.Positions)
	} else {
		guess.Peaks = estimatePeaks(f.x, f.y, n)
	}
	if opts.RemoveBackground {
		guess.Background = estimateBackground(f.y)
	}
	if len(f.x) < guess.Len() {
		return nil, fmt.Errorf("%w: %d points, %d parameters", ErrTooFewPoints, len(f.x), guess.Len())
	}

	f.guess = guess
	f.fitted = nil
	f.state = GuessReady

	maxEvals := opts.MaxEvaluations
	if maxEvals <= 0 {
		maxEvals = defaultMaxEvaluations
	}
	res := levenbergMarquardt(f.problem(guess), guess.Vector(), lmSettings{
		MaxEvaluations: maxEvals,
		FTol:           defaultTolerance,
		XTol:           defaultTolerance,
	})
	if !res.Converged {
		log.Warn().
			Int("peaks", n).
			Int("evaluations", res.Evaluations).
			Msg("Fit did not converge")
		return nil, fmt.Errorf("%w after %d evaluations", ErrFitDidNotConverge, res.Evaluations)
	}

	fitted := guess.Clone()
	fitted.setVector(res.X)
	for _, fp := range fixed {
		fp.apply(fitted, guess)
	}
	f.fitted = fitted
	f.state = Fitted

	log.Debug().
		Int("peaks", n).
		Bool("background", fitted.HasBackground()).
		Int("evaluations", res.Evaluations).
		Float64("cost", res.Cost).
		Msg("Fit converged")
	return fitted.Clone(), nil
}

// problem builds the residual and analytic Jacobian of the model p on the
// current selection
func (f *Fitter) problem(p *Params) problem {
	x, y := f.x, f.y
	work := p.Clone()
	nPeaks := len(p.Peaks)
	return problem{
		m: len(x),
		n: p.Len(),
		residual: func(dst, v []float64) {
			work.setVector(v)
			for i, xi := range x {
				dst[i] = work.Eval(xi) - y[i]
			}
		},
		jacobian: func(dst *mat.Dense, v []float64) {
			work.setVector(v)
			for i, xi := range x {
				for k, pk := range work.Peaks {
					d := xi - pk.Position
					w2 := pk.Width * pk.Width
					den := d*d + w2
					den2 := den * den
					dst.Set(i, 3*k, pk.Height*w2*2*d/den2)
					dst.Set(i, 3*k+1, w2/den)
					dst.Set(i, 3*k+2, 2*pk.Height*pk.Width*d*d/den2)
				}
				if work.Background != nil {
					dst.Set(i, 3*nPeaks, 1)
					dst.Set(i, 3*nPeaks+1, xi)
				}
			}
		},
	}
}

// Integrals returns the area of every fitted peak
func (f *Fitter) Integrals() ([]float64, error) {
	if f.fitted == nil {
		return nil, ErrNoFit
	}
	out := make([]float64, len(f.fitted.Peaks))
	for i, pk := range f.fitted.Peaks {
		out[i] = pk.Integral()
	}
	return out, nil
}

// Background evaluates the fitted baseline on the fit curve abscissa.
// It reports false when there is no fit or the fit has no background.
func (f *Fitter) Background() ([]float64, bool) {
	if f.fitted == nil || !f.fitted.HasBackground() {
		return nil, false
	}
	x := f.curveX()
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = f.fitted.Background.At(xi)
	}
	return y, true
}

// FitCurve samples the fitted model over the selection at five times the
// data density
func (f *Fitter) FitCurve() (x, y []float64, err error) {
	if f.fitted == nil {
		return nil, nil, ErrNoFit
	}
	x = f.curveX()
	return x, f.fitted.EvalAll(x), nil
}

// GuessCurve samples the initial guess like FitCurve
func (f *Fitter) GuessCurve() (x, y []float64, err error) {
	if f.guess == nil {
		return nil, nil, ErrNoGuess
	}
	x = f.curveX()
	return x, f.guess.EvalAll(x), nil
}

func (f *Fitter) curveX() []float64 {
	lo, hi := f.lo, f.hi
	if !f.hasRange {
		lo, hi = floats.Min(f.x), floats.Max(f.x)
	}
	return linspace(lo, hi, curveOversampling*len(f.x))
}

type fixedParam struct {
	peak  int
	field string
}

func (fp fixedParam) apply(dst, src *Params) {
	switch fp.field {
	case "position":
		dst.Peaks[fp.peak].Position = src.Peaks[fp.peak].Position
	case "height":
		dst.Peaks[fp.peak].Height = src.Peaks[fp.peak].Height
	case "width":
		dst.Peaks[fp.peak].Width = src.Peaks[fp.peak].Width
	}
}

func parseFixed(names []string, peaks int) ([]fixedParam, error) {
	out := make([]fixedParam, 0, len(names))
	for _, name := range names {
		i := strings.LastIndexByte(name, '_')
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
		}
		field := name[:i]
		idx, err := strconv.Atoi(name[i+1:])
		if err != nil || idx < 0 || idx >= peaks {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
		}
		switch field {
		case "position", "height", "width":
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
		}
		out = append(out, fixedParam{peak: idx, field: field})
	}
	return out, nil
}
