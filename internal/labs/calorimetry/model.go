// Package calorimetry simulates the temperature trace of a bomb calorimeter
// in which a tablet of a known compound is burnt.
package calorimetry

import (
	"fmt"
	"math"

	"github.com/sebastiankruger/chemlab-simulator/internal/dataset"
	"github.com/sebastiankruger/chemlab-simulator/internal/generator"
	"github.com/sebastiankruger/chemlab-simulator/internal/lab"
)

// Lab is the bomb calorimetry laboratory
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
	return "Bomb Calorimetry"
}

func (l *Lab) Columns() []string {
	return []string{"Time (s)", "Temperature (K)"}
}

func (l *Lab) Samples() []string {
	return SampleNames
}

// Setup registers the calorimeter defaults
func (l *Lab) Setup(env *lab.Env) error {
	return env.SetParameters(map[string]any{
		KeyIgnitionTime:        l.config.IgnitionTime,
		KeyRelaxationTime:      l.config.RelaxationTime,
		lab.KeyNumberOfValues:  l.config.NumberOfValues,
		lab.KeyNoiseLevel:      l.config.NoiseLevel,
		KeyCalorimeterConstant: l.config.CalorimeterConstant,
		KeyTabletMass:          l.config.TabletMass,
		KeyTabletMassStd:       l.config.TabletMassStd,
	})
}

// CombustionEnthalpy returns the molar combustion enthalpy of s in J/mol
// from the formation enthalpies of the products and of the sample.
func CombustionEnthalpy(s Sample) float64 {
	return s.N1*CarbonDioxide.DeltaHf + s.N2*Water.DeltaHf - s.DeltaHf.Value
}

// TemperatureRise returns the calorimeter temperature jump in K for a tablet
// of massMg milligrams, burnt at temperature T with heat capacity c.
func TemperatureRise(s Sample, massMg, temperature, gasConstant, c float64) float64 {
	moles := massMg / 1000 / s.MolarMass
	dH := CombustionEnthalpy(s) * moles
	dnRT := moles * gasConstant * temperature * s.DeltaN
	dU := dH - dnRT
	return -dU / c
}

// CreateData simulates one combustion run
func (l *Lab) CreateData(env *lab.Env) (*dataset.Dataset, error) {
	name, err := env.Sample()
	if err != nil {
		return nil, err
	}
	sample, ok := Catalog[name]
	if !ok {
		return nil, fmt.Errorf("calorimetry: no catalog entry for %q", name)
	}

	n, err := env.Count()
	if err != nil {
		return nil, err
	}
	// keep the metadata in step with the values used for this run
	if err := env.SetParameters(map[string]any{lab.KeySample: name, lab.KeyNumberOfValues: n}); err != nil {
		return nil, err
	}

	p, err := l.readParams(env)
	if err != nil {
		return nil, err
	}

	slopeBefore := env.Stream.Uniform(0, p.noise) / 3
	slopeAfter := env.Stream.Uniform(0, p.noise) / 3
	mass := env.Stream.Normal(p.mass, p.massStd)

	env.AddMetadata("Tablet mass (mg)", mass)
	env.AddMetadata("Ignition time (s)", p.ignition)
	env.AddMetadata("Sample", name)

	deltaT := TemperatureRise(sample, mass, p.temperature, p.gasConstant, p.calorimeter)

	x := generator.Linspace(0, float64(n), n)
	y := env.Stream.NormalN(n, 0, p.noise)

	rise := 0.0
	temperature := p.temperature
	for i := 0; i < n; i++ {
		if i < p.ignition {
			temperature += slopeBefore
		} else {
			temperature += slopeAfter
			rise = deltaT * (1 - math.Exp(-float64(i-p.ignition)/p.relaxation))
		}
		y[i] += temperature + rise
	}

	env.Log.Debug().
		Str("sample", name).
		Float64("mass_mg", mass).
		Float64("delta_t", deltaT).
		Msg("Combustion simulated")

	return dataset.New(nil, x, y), nil
}

type runParams struct {
	ignition    int
	relaxation  float64
	noise       float64
	temperature float64
	gasConstant float64
	calorimeter float64
	mass        float64
	massStd     float64
}

func (l *Lab) readParams(env *lab.Env) (runParams, error) {
	var p runParams
	var err error
	if p.ignition, err = env.Params.Int(KeyIgnitionTime); err != nil {
		return p, err
	}
	if p.relaxation, err = env.Params.Float(KeyRelaxationTime); err != nil {
		return p, err
	}
	if p.noise, err = env.NoiseLevel(); err != nil {
		return p, err
	}
	if p.temperature, err = env.Temperature(); err != nil {
		return p, err
	}
	if p.gasConstant, err = env.GasConstant(); err != nil {
		return p, err
	}
	if p.calorimeter, err = env.Params.Float(KeyCalorimeterConstant); err != nil {
		return p, err
	}
	if p.mass, err = env.Params.Float(KeyTabletMass); err != nil {
		return p, err
	}
	if p.massStd, err = env.Params.Float(KeyTabletMassStd); err != nil {
		return p, err
	}
	return p, nil
}
