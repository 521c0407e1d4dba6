// Package generator turns a model function into a noisy, rounded (x, y) table.
package generator

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/sebastiankruger/chemlab-simulator/internal/core"
	"github.com/sebastiankruger/chemlab-simulator/internal/dataset"
)

var (
	// ErrMissingDomain is returned when no x domain is given.
	ErrMissingDomain = errors.New("generator: x domain must be provided as (min, max)")

	// ErrInvalidCount is returned when the number of values is not positive.
	ErrInvalidCount = errors.New("generator: number of values must be a positive integer")

	// ErrInvalidSpacing is returned for a spacing other than linear or random.
	ErrInvalidSpacing = errors.New("generator: spacing must be 'linear' or 'random'")
)

// ModelFunc evaluates a physical model at x with named parameters.
type ModelFunc func(x float64, params map[string]float64) float64

// Spacing selects how x values are placed inside the domain
type Spacing string

const (
	SpacingLinear Spacing = "linear"
	SpacingRandom Spacing = "random"
)

// Domain is the closed interval x values are drawn from
type Domain struct {
	Lo, Hi float64
}

// Options controls sampling, noise and rounding.
type Options struct {
	Domain  *Domain
	Spacing Spacing // empty means random

	NoiseLevel    *float64 // standard deviation of the y noise
	Background    *float64 // constant offset added to every y
	ForcePositive bool     // y = max(10^-precision, |y|)

	// Weights is accepted for compatibility and has no effect.
	Weights *bool

	Precision int // decimal digits kept in y (and in random x)
}

// Float returns a pointer to v, for the optional fields of Options
func Float(v float64) *float64 {
	return &v
}

// Generate samples fn over the domain and returns count (x, y) rows.
// Random draws come from stream: first the x draws, then the y noise.
func Generate(stream *core.Stream, fn ModelFunc, params map[string]float64, count int, opts Options) (*dataset.Dataset, error) {
	if opts.Domain == nil {
		return nil, ErrMissingDomain
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCount, count)
	}

	var x []float64
	switch opts.Spacing {
	case SpacingLinear:
		x = Linspace(opts.Domain.Lo, opts.Domain.Hi, count)
	case SpacingRandom, "":
		x = core.RoundAll(stream.UniformN(count, opts.Domain.Lo, opts.Domain.Hi), opts.Precision)
		sort.Float64s(x)
	default:
		return nil, fmt.Errorf("%w, got %q", ErrInvalidSpacing, opts.Spacing)
	}

	y := make([]float64, count)
	for i, xi := range x {
		y[i] = fn(xi, params)
	}

	if opts.Background != nil {
		floats.AddConst(*opts.Background, y)
	}

	if opts.NoiseLevel != nil && *opts.NoiseLevel > 0 {
		floats.Add(y, stream.NormalN(count, 0, *opts.NoiseLevel))
	}

	if opts.ForcePositive {
		eps := math.Pow(10, -float64(opts.Precision))
		for i, v := range y {
			y[i] = core.FloorPositive(v, eps)
		}
	}

	core.RoundAll(y, opts.Precision)

	return dataset.New(nil, x, y), nil
}

// Linspace returns n evenly spaced values with both endpoints exact.
func Linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	x := floats.Span(make([]float64, n), lo, hi)
	x[0], x[n-1] = lo, hi
	return x
}
