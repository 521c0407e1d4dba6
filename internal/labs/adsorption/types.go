package adsorption

// Adsorbate describes a dye adsorbing on the surface
type Adsorbate struct {
	DeltaH    float64 // J/mol
	DeltaS    float64 // J/mol/K
	Coverage  float64 // monolayer coverage Q, mol/m^2
	MolarMass float64 // g/mol
}

// Dye is the only adsorbate of the course
const Dye = "dye"

// Catalog lists the selectable adsorbates
var Catalog = map[string]Adsorbate{
	Dye: {
		DeltaH:    -19.51e3,
		DeltaS:    -10,
		Coverage:  0.0001,
		MolarMass: 584.910641,
	},
}

// Parameter keys specific to this laboratory
const (
	KeyVolume = "volume"
	KeyMinDye = "minDye"
	KeyMaxDye = "maxDye"
)

// Config holds the laboratory defaults
type Config struct {
	Volume         float64 // L
	MinDye         float64 // mg
	MaxDye         float64 // mg
	NumberOfValues int
	NoiseLevel     float64 // mol/L
	Precision      int
}

// DefaultConfig returns the course settings
func DefaultConfig() Config {
	return Config{
		Volume:         1,
		MinDye:         500,
		MaxDye:         10000,
		NumberOfValues: 100,
		NoiseLevel:     0.5e-5,
		Precision:      10,
	}
}
