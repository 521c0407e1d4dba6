package statistics

import (
	"math"

	"github.com/sebastiankruger/chemlab-simulator/internal/generator"
)

// Exercise names, in display order
const (
	Averages      = "Averages"
	Propagation   = "Propagation of uncertainty"
	Comparison    = "Comparison of averages"
	LinearFit     = "Linear fit"
	NonLinearFit  = "Non linear fit"
	OutlierSearch = "Detection of outliers"
)

// Replicate is the mean and standard deviation of one measured quantity
type Replicate struct {
	Mean   float64
	StdDev float64
}

// Exercise describes how the data of one exercise are produced. Either
// Replicates is set, or Function with its Params and Domain.
type Exercise struct {
	Replicates []Replicate

	Function generator.ModelFunc
	Params   map[string]float64
	Domain   generator.Domain

	Expected  *[2]float64 // reference result written to the metadata
	Precision int
	Noise     *float64 // overrides noise_level when set
	Shift     float64  // added to one random y after generation
}

// Line is m x + q
func Line(x float64, p map[string]float64) float64 {
	return p["m"]*x + p["q"]
}

// Murnaghan is the Murnaghan equation of state E(V)
func Murnaghan(x float64, p map[string]float64) float64 {
	e0, k0, kp, v0 := p["E0"], p["K0"], p["Kp"], p["V0"]
	return e0 + k0*x/kp*(math.Pow(v0/x, kp)/(kp-1)+1) - k0*v0/(kp-1)
}

// SampleNames is the display order of the catalog
var SampleNames = []string{Averages, Propagation, Comparison, LinearFit, NonLinearFit, OutlierSearch}

// Catalog lists the exercises
var Catalog = map[string]Exercise{
	Averages: {
		Replicates: []Replicate{{1.0, 0.1}, {12.0, 2.0}},
		Expected:   &[2]float64{1.0, 10.0},
		Precision:  3,
	},
	Propagation: {
		Replicates: []Replicate{{15.0, 1.0}, {133.0, 2.0}},
		Precision:  3,
	},
	Comparison: {
		Replicates: []Replicate{{15.0, 1.0}, {13.2, 2.0}},
		Precision:  3,
	},
	LinearFit: {
		Function:  Line,
		Params:    map[string]float64{"m": 12.3, "q": 1.0},
		Domain:    generator.Domain{Lo: 0, Hi: 10},
		Expected:  &[2]float64{11.3, 0.9},
		Precision: 3,
		Noise:     generator.Float(5),
	},
	NonLinearFit: {
		Function:  Murnaghan,
		Params:    map[string]float64{"E0": -634.2, "K0": 12.43, "Kp": 4.28, "V0": 99.11},
		Domain:    generator.Domain{Lo: 50, Hi: 140},
		Precision: 3,
		Noise:     generator.Float(5),
	},
	OutlierSearch: {
		Function:  Line,
		Params:    map[string]float64{"m": 2.3, "q": 0.1},
		Domain:    generator.Domain{Lo: 10, Hi: 20},
		Shift:     2,
		Precision: 3,
	},
}

// KeyExpectedValue is the metadata key of the reference result
const KeyExpectedValue = "expected_value"

// DefaultNumberOfValues is the sample size of every exercise
const DefaultNumberOfValues = 10
