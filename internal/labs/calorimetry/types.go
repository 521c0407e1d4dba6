package calorimetry

// Formation holds the standard formation enthalpy of a combustion product
type Formation struct {
	MolarMass float64 // g/mol
	DeltaHf   float64 // J/mol
}

// Reference combustion products
var (
	CarbonDioxide = Formation{MolarMass: 44.01, DeltaHf: -393.51e3}
	Water         = Formation{MolarMass: 18.015, DeltaHf: -285.83e3}
)

// Measured is a tabulated value with its standard error
type Measured struct {
	Value    float64
	StdError float64
}

// Sample describes a combustible tablet
type Sample struct {
	MolarMass float64  // g/mol
	N1        float64  // mol CO2 per mol sample
	N2        float64  // mol H2O per mol sample
	DeltaN    float64  // change in moles of gas
	DeltaHf   Measured // formation enthalpy, J/mol
	DeltaHc   Measured // tabulated combustion enthalpy, J/mol
}

// Catalog lists the selectable samples
var Catalog = map[string]Sample{
	"benzoic": {
		MolarMass: 122.123,
		N1:        7,
		N2:        3,
		DeltaN:    7 - 15.0/2,
		DeltaHf:   Measured{Value: -384.8e3, StdError: 0.5e3},
		DeltaHc:   Measured{Value: -3227.26e3, StdError: 0.2e3},
	},
	"sucrose": {
		MolarMass: 342.3,
		N1:        12,
		N2:        11,
		DeltaN:    0,
		DeltaHf:   Measured{Value: -2221.2e3, StdError: 0.2e3},
		DeltaHc:   Measured{Value: -5643.4e3, StdError: 1.8e3},
	},
	"naphthalene": {
		MolarMass: 128.17,
		N1:        10,
		N2:        4,
		DeltaN:    10 - 12,
		DeltaHf:   Measured{Value: 77e3, StdError: 10.0e3},
		DeltaHc:   Measured{Value: -5160e3, StdError: 20.0e3},
	},
}

// SampleNames is the display order of the catalog
var SampleNames = []string{"benzoic", "sucrose", "naphthalene"}

// Parameter keys specific to this laboratory
const (
	KeyIgnitionTime        = "ignition_time"
	KeyRelaxationTime      = "relaxation_time"
	KeyCalorimeterConstant = "calorimeter_constant"
	KeyTabletMass          = "tablet_mass"
	KeyTabletMassStd       = "tablet_mass_std"
)

// Config holds the laboratory defaults
type Config struct {
	IgnitionTime        int     // sample index of the ignition
	RelaxationTime      float64 // samples
	NumberOfValues      int
	NoiseLevel          float64 // K
	CalorimeterConstant float64 // J/K
	TabletMass          float64 // mg
	TabletMassStd       float64 // mg
}

// DefaultConfig returns the course settings
func DefaultConfig() Config {
	return Config{
		IgnitionTime:        20,
		RelaxationTime:      3,
		NumberOfValues:      100,
		NoiseLevel:          0.1,
		CalorimeterConstant: 10135,
		TabletMass:          1000,
		TabletMassStd:       100,
	}
}
