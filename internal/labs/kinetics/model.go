// Package kinetics simulates the absorbance decay of crystal violet in a
// basic solution under pseudo first order conditions.
package kinetics

import (
	"fmt"
	"math"

	"github.com/sebastiankruger/chemlab-simulator/internal/dataset"
	"github.com/sebastiankruger/chemlab-simulator/internal/generator"
	"github.com/sebastiankruger/chemlab-simulator/internal/lab"
)

// Lab is the crystal violet kinetics laboratory
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
	return "Crystal Violet Lab"
}

func (l *Lab) Columns() []string {
	return []string{"Time (s)", "Absorbance"}
}

func (l *Lab) Samples() []string {
	return []string{CrystalViolet}
}

// Setup registers the defaults and preselects the dye
func (l *Lab) Setup(env *lab.Env) error {
	return env.SetParameters(map[string]any{
		lab.KeySample:         CrystalViolet,
		lab.KeyNumberOfValues: l.config.NumberOfValues,
		lab.KeyNoiseLevel:     l.config.NoiseLevel,
		lab.KeyPrecision:      l.config.Precision,
		KeyExperimentTime:     l.config.ExperimentTime,
		KeyBackground:         l.config.Background,
		KeyVolumeDye:          l.config.VolumeDye,
		KeyVolumeOH:           l.config.VolumeOH,
		KeyVolumeWater:        l.config.VolumeWater,
	})
}

// Volumes of the three solutions mixed in the cuvette, in mL
type Volumes struct {
	Dye   float64
	OH    float64
	Water float64
}

// PseudoRateConstant returns k' = A exp(-Ea/RT) [OH-]^beta in 1/s
func PseudoRateConstant(d Dye, hydroxide, temperature, gasConstant float64) float64 {
	k := d.Prefactor * math.Exp(-d.ActivationEnergy/(gasConstant*temperature))
	return k * math.Pow(hydroxide, d.Beta)
}

// Decay is the absorbance A0 exp(-k t)
func Decay(t float64, p map[string]float64) float64 {
	return p["A"] * math.Exp(-p["k"]*t)
}

// CreateData simulates one absorbance trace
func (l *Lab) CreateData(env *lab.Env) (*dataset.Dataset, error) {
	name, err := env.Sample()
	if err != nil {
		return nil, err
	}
	dye, ok := Catalog[name]
	if !ok {
		return nil, fmt.Errorf("kinetics: no catalog entry for %q", name)
	}
	n, err := env.Count()
	if err != nil {
		return nil, err
	}
	if err := env.SetParameters(map[string]any{lab.KeySample: name, lab.KeyNumberOfValues: n}); err != nil {
		return nil, err
	}

	var vol Volumes
	if vol.Dye, err = env.Params.Float(KeyVolumeDye); err != nil {
		return nil, err
	}
	if vol.OH, err = env.Params.Float(KeyVolumeOH); err != nil {
		return nil, err
	}
	if vol.Water, err = env.Params.Float(KeyVolumeWater); err != nil {
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
	exptTime, err := env.Params.Float(KeyExperimentTime)
	if err != nil {
		return nil, err
	}
	background, err := env.Params.Float(KeyBackground)
	if err != nil {
		return nil, err
	}

	env.AddMetadata("Temperature (C)", temperature-273.15)
	env.AddMetadata("Volume of CV (mL)", vol.Dye)
	env.AddMetadata("Volume of OH (mL)", vol.OH)
	env.AddMetadata("Volume of H2O (mL)", vol.Water)

	// pipetting error on every volume, drawn in mixing order
	total := 0.0
	for _, v := range []float64{vol.Dye, vol.OH, vol.Water} {
		total += v + env.Stream.Normal(0, noise)
	}
	dyeConc := dye.StockDye * vol.Dye / total
	ohConc := dye.StockHydroxide * vol.OH / total

	params := map[string]float64{
		"A": dyeConc * dye.Absorptivity,
		"k": PseudoRateConstant(dye, ohConc, temperature, gasConstant),
	}

	env.Log.Debug().
		Float64("total_volume", total).
		Float64("k_obs", params["k"]).
		Msg("Mixture prepared")

	return env.Generate(Decay, params, n, generator.Options{
		Domain:        &generator.Domain{Lo: 0, Hi: exptTime},
		Spacing:       generator.SpacingLinear,
		NoiseLevel:    generator.Float(noise),
		Background:    generator.Float(background),
		ForcePositive: true,
	})
}
