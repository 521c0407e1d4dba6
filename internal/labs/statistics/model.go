// Package statistics generates the data sets of the basic statistics
// exercises: replicate measurements, regression data and outliers.
package statistics

import (
	"fmt"

	"github.com/sebastiankruger/chemlab-simulator/internal/core"
	"github.com/sebastiankruger/chemlab-simulator/internal/dataset"
	"github.com/sebastiankruger/chemlab-simulator/internal/generator"
	"github.com/sebastiankruger/chemlab-simulator/internal/lab"
)

// Lab is the basic statistics laboratory
type Lab struct{}

// New creates the laboratory
func New() *Lab {
	return &Lab{}
}

func (l *Lab) Name() string {
	return "Basic Statistics Lab"
}

func (l *Lab) Columns() []string {
	return []string{"X", "Y"}
}

func (l *Lab) Samples() []string {
	return SampleNames
}

func (l *Lab) Setup(env *lab.Env) error {
	return env.Set(lab.KeyNumberOfValues, DefaultNumberOfValues)
}

// CreateData generates the data set of the selected exercise
func (l *Lab) CreateData(env *lab.Env) (*dataset.Dataset, error) {
	name, err := env.Sample()
	if err != nil {
		return nil, err
	}
	ex, ok := Catalog[name]
	if !ok {
		return nil, fmt.Errorf("statistics: no catalog entry for %q", name)
	}
	n, err := env.Count()
	if err != nil {
		return nil, err
	}

	update := map[string]any{
		lab.KeyNumberOfValues: n,
		lab.KeyPrecision:      ex.Precision,
	}
	if ex.Noise != nil {
		update[lab.KeyNoiseLevel] = *ex.Noise
	}
	if err := env.SetParameters(update); err != nil {
		return nil, err
	}

	env.AddMetadata(lab.KeyNumberOfValues, n)
	env.AddMetadata(lab.KeySample, name)
	if ex.Expected != nil {
		env.AddMetadata(KeyExpectedValue, *ex.Expected)
	}

	if len(ex.Replicates) > 0 {
		return replicates(env.Stream, n, ex), nil
	}

	noise, err := env.NoiseLevel()
	if err != nil {
		return nil, err
	}
	domain := ex.Domain
	ds, err := env.Generate(ex.Function, ex.Params, n, generator.Options{
		Domain:     &domain,
		NoiseLevel: generator.Float(noise),
	})
	if err != nil {
		return nil, err
	}

	if ex.Shift != 0 {
		i := env.Stream.Intn(n)
		ds.Rows[i][1] = core.Round(ds.Rows[i][1]+ex.Shift, ex.Precision)
		env.Log.Debug().Int("row", i).Float64("shift", ex.Shift).Msg("Outlier injected")
	}
	return ds, nil
}

// replicates draws n rounded values per quantity, one column each
func replicates(stream *core.Stream, n int, ex Exercise) *dataset.Dataset {
	columns := make([][]float64, len(ex.Replicates))
	for i, r := range ex.Replicates {
		columns[i] = core.RoundAll(stream.NormalN(n, r.Mean, r.StdDev), ex.Precision)
	}
	return dataset.New(nil, columns...)
}
