// Package adsorption simulates a Langmuir adsorption isotherm: the dye left
// in solution as a function of the amount of dye added.
package adsorption

import (
	"fmt"
	"math"

	"github.com/sebastiankruger/chemlab-simulator/internal/dataset"
	"github.com/sebastiankruger/chemlab-simulator/internal/generator"
	"github.com/sebastiankruger/chemlab-simulator/internal/lab"
)

// Lab is the surface adsorption laboratory
type Lab struct {
	config Config
}

// New creates the laboratory with the default configuration
func New() *Lab {
	return &Lab{config: DefaultConfig()}
}

// NewWithConfig creates the laboratory with custom defaults
func NewWithConfig(cfg Config) *Lab {
	return &Lab{config: cfg}
}

func (l *Lab) Name() string {
	return "Surface Adsorption Lab"
}

func (l *Lab) Columns() []string {
	return []string{"Dye added (mg)", "Dye in solution (mol/L)"}
}

func (l *Lab) Samples() []string {
	return []string{Dye}
}

// Setup registers the defaults and preselects the dye
func (l *Lab) Setup(env *lab.Env) error {
	return env.SetParameters(map[string]any{
		lab.KeySample:         Dye,
		lab.KeyNumberOfValues: l.config.NumberOfValues,
		lab.KeyNoiseLevel:     l.config.NoiseLevel,
		lab.KeyPrecision:      l.config.Precision,
		KeyVolume:             l.config.Volume,
		KeyMinDye:             l.config.MinDye,
		KeyMaxDye:             l.config.MaxDye,
	})
}

// EquilibriumConstant returns the Langmuir constant K in L/mol
func EquilibriumConstant(a Adsorbate, temperature, gasConstant float64) float64 {
	return math.Exp((-a.DeltaH/temperature + a.DeltaS) / gasConstant)
}

// Isotherm returns the equilibrium concentration in solution for a total dye
// concentration x, given K and the coverage Q.
func Isotherm(x float64, p map[string]float64) float64 {
	k, q := p["K"], p["Q"]
	b := x*k - k*q - 1
	return (b + math.Sqrt(b*b+4*x*k)) / (2 * k)
}

// CreateData simulates one isotherm
func (l *Lab) CreateData(env *lab.Env) (*dataset.Dataset, error) {
	name, err := env.Sample()
	if err != nil {
		return nil, err
	}
	dye, ok := Catalog[name]
	if !ok {
		return nil, fmt.Errorf("adsorption: no catalog entry for %q", name)
	}
	n, err := env.Count()
	if err != nil {
		return nil, err
	}
	if err := env.SetParameters(map[string]any{lab.KeySample: name, lab.KeyNumberOfValues: n}); err != nil {
		return nil, err
	}

	volume, err := env.Params.Float(KeyVolume)
	if err != nil {
		return nil, err
	}
	minDye, err := env.Params.Float(KeyMinDye)
	if err != nil {
		return nil, err
	}
	maxDye, err := env.Params.Float(KeyMaxDye)
	if err != nil {
		return nil, err
	}
	temperature, err := env.Temperature()
	if err != nil {
		return nil, err
	}
	gasConstant, err := env.GasConstant()
	if err != nil {
		return nil, err
	}
	noise, err := env.NoiseLevel()
	if err != nil {
		return nil, err
	}

	env.AddMetadata("Temperature (C)", temperature-273.15)
	env.AddMetadata("Volume (L)", volume)
	env.AddMetadata("Molar mass (g/mol)", dye.MolarMass)
	env.AddMetadata("MinDye (mg)", minDye)
	env.AddMetadata("MaxDye (mg)", maxDye)
	env.AddMetadata("Number of values", n)

	// mg of dye to mol/L
	conversion := 1000 * dye.MolarMass * volume

	ds, err := env.Generate(Isotherm, map[string]float64{
		"K": EquilibriumConstant(dye, temperature, gasConstant),
		"Q": dye.Coverage,
	}, n, generator.Options{
		Domain:        &generator.Domain{Lo: minDye / conversion, Hi: maxDye / conversion},
		Spacing:       generator.SpacingLinear,
		NoiseLevel:    generator.Float(noise),
		ForcePositive: true,
	})
	if err != nil {
		return nil, err
	}
	for _, row := range ds.Rows {
		row[0] *= conversion
	}
	return ds, nil
}
