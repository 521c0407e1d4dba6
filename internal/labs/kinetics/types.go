package kinetics

// Dye describes the reaction of a dye with hydroxide
type Dye struct {
	ActivationEnergy float64 // J/mol
	Prefactor        float64 // 1/M/s
	Alpha            float64 // order in dye
	Beta             float64 // order in OH-
	Absorptivity     float64 // L/mol/cm at 590 nm
	StockDye         float64 // mol/L
	StockHydroxide   float64 // mol/L
}

// CrystalViolet is the only dye of the course
const CrystalViolet = "crystal violet"

// Catalog lists the selectable dyes
var Catalog = map[string]Dye{
	CrystalViolet: {
		ActivationEnergy: 63e3,
		Prefactor:        5.9e9,
		Alpha:            1.0,
		Beta:             0.75,
		Absorptivity:     160e3,
		StockDye:         2.5e-5,
		StockHydroxide:   0.5,
	},
}

// Parameter keys specific to this laboratory
const (
	KeyExperimentTime = "expt_time"
	KeyBackground     = "background"
	KeyVolumeDye      = "volume_cv"
	KeyVolumeOH       = "volume_oh"
	KeyVolumeWater    = "volume_h2o"
)

// Config holds the laboratory defaults
type Config struct {
	ExperimentTime float64 // s
	NumberOfValues int
	NoiseLevel     float64
	Precision      int
	Background     float64 // absorbance
	VolumeDye      float64 // mL
	VolumeOH       float64 // mL
	VolumeWater    float64 // mL
}

// DefaultConfig returns the course settings
func DefaultConfig() Config {
	return Config{
		ExperimentTime: 1000,
		NumberOfValues: 501,
		NoiseLevel:     0.05,
		Precision:      6,
		Background:     0.01,
		VolumeDye:      10,
		VolumeOH:       10,
		VolumeWater:    10,
	}
}
