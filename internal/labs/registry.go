// Package labs registers the virtual laboratories by short name.
package labs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sebastiankruger/chemlab-simulator/internal/lab"
	"github.com/sebastiankruger/chemlab-simulator/internal/labs/adsorption"
	"github.com/sebastiankruger/chemlab-simulator/internal/labs/calorimetry"
	"github.com/sebastiankruger/chemlab-simulator/internal/labs/kinetics"
	"github.com/sebastiankruger/chemlab-simulator/internal/labs/statistics"
)

var ErrUnknownLab = errors.New("labs: unknown laboratory")

var registry = map[string]func() lab.Model{
	"calorimetry": func() lab.Model { return calorimetry.New() },
	"kinetics":    func() lab.Model { return kinetics.New() },
	"adsorption":  func() lab.Model { return adsorption.New() },
	"statistics":  func() lab.Model { return statistics.New() },
}

// New returns a fresh model of the named laboratory
func New(name string) (lab.Model, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownLab, name, Names())
	}
	return factory(), nil
}

// Names lists the registered laboratories, sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
