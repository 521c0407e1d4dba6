package lab

import (
	"github.com/sebastiankruger/chemlab-simulator/internal/dataset"
)

// Model defines what every virtual laboratory must implement
type Model interface {
	// Name is the laboratory title written to the metadata
	Name() string

	// Columns are the header labels of the generated table
	Columns() []string

	// Samples lists the selectable sample keys of the catalog
	Samples() []string

	// Setup registers lab defaults and descriptive metadata
	Setup(env *Env) error

	// CreateData runs one simulated experiment
	CreateData(env *Env) (*dataset.Dataset, error)
}
