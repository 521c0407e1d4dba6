package lab

import (
	"fmt"
	"slices"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sebastiankruger/chemlab-simulator/internal/core"
	"github.com/sebastiankruger/chemlab-simulator/internal/dataset"
	"github.com/sebastiankruger/chemlab-simulator/internal/generator"
)

// Parameter keys shared by every laboratory
const (
	KeyStudentID      = "student_ID"
	KeyNoiseLevel     = "noise_level"
	KeyPrecision      = "precision"
	KeySample         = "sample"
	KeyGasConstant    = "R"
	KeyAvogadro       = "NA"
	KeyTemperature    = "temperature"
	KeyNumberOfValues = "number_of_values"
	KeyOutputFile     = "output_file"
	KeyLaboratory     = "laboratory"
	KeyColumns        = "columns"
)

// DefaultStudentID seeds a laboratory until an identifier is set
const DefaultStudentID = 123456789

// Env is the shared machinery a lab model works with: parameters,
// metadata and the seeded random stream of the current run.
type Env struct {
	Params   *core.Values
	Metadata *core.Values
	Stream   *core.Stream
	Log      zerolog.Logger

	name    string
	samples []string
	runID   string
}

func newEnv(name string) *Env {
	params := core.NewValues()
	params.Set(KeyStudentID, DefaultStudentID)
	params.Set(KeyNoiseLevel, 1.0)
	params.Set(KeyPrecision, 1)
	params.Set(KeySample, nil)
	params.Set(KeyGasConstant, 8.314)
	params.Set(KeyAvogadro, 6.022e23)
	params.Set(KeyTemperature, 298.0)
	params.Set(KeyNumberOfValues, 10)
	params.Set(KeyOutputFile, nil)

	metadata := core.NewValues()
	metadata.Set(KeyStudentID, DefaultStudentID)
	metadata.Set(KeyNumberOfValues, 10)
	metadata.Set(KeyOutputFile, nil)

	env := &Env{
		Params:   params,
		Metadata: metadata,
		Stream:   core.NewStream(DefaultStudentID),
		name:     name,
	}
	env.newRun()
	return env
}

// newRun tags log output of a freshly seeded run
func (e *Env) newRun() {
	e.runID = uuid.New().String()
	e.Log = log.With().
		Str("lab", e.name).
		Str("run_id", e.runID).
		Logger()
}

// RunID identifies the current seeded run in log output
func (e *Env) RunID() string {
	return e.runID
}

// AddMetadata stores a descriptive value that is written with the data
func (e *Env) AddMetadata(key string, value any) {
	e.Metadata.Set(key, value)
}

// SetIdentifier reseeds the stream from a student identifier.
// Nothing changes when the identifier is invalid.
func (e *Env) SetIdentifier(value any) error {
	id, err := core.ParseIdentifier(value)
	if err != nil {
		return err
	}
	e.Params.Set(KeyStudentID, id)
	e.Stream.Reseed(id)
	e.syncMetadata(KeyStudentID)
	e.newRun()
	e.Log.Info().Int64("seed", e.Stream.Seed()).Msg("Stream seeded")
	return nil
}

// SetParameters applies values one key at a time, in sorted key order.
// It stops at the first invalid value; keys applied before it stay applied.
func (e *Env) SetParameters(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := e.Set(k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

// Set applies a single parameter and mirrors it into the metadata when the
// metadata tracks that key.
func (e *Env) Set(key string, value any) error {
	switch key {
	case KeyStudentID:
		return e.SetIdentifier(value)
	case KeySample:
		if err := e.validateSample(value); err != nil {
			return err
		}
	}
	e.Params.Set(key, value)
	e.syncMetadata(key)
	return nil
}

func (e *Env) syncMetadata(key string) {
	if !e.Metadata.Has(key) {
		return
	}
	value, _ := e.Params.Get(key)
	e.Metadata.Set(key, value)
}

func (e *Env) validateSample(value any) error {
	if value == nil {
		return nil
	}
	name, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: sample must be a string, got %T", core.ErrInvalidParameter, value)
	}
	if !slices.Contains(e.samples, name) {
		return fmt.Errorf("%w: %q (available: %v)", core.ErrUnknownSample, name, e.samples)
	}
	return nil
}

// Sample returns the selected sample key
func (e *Env) Sample() (string, error) {
	value, _ := e.Params.Get(KeySample)
	if value == nil {
		return "", core.ErrSampleNotSelected
	}
	name, ok := value.(string)
	if !ok || name == "" {
		return "", core.ErrSampleNotSelected
	}
	if !slices.Contains(e.samples, name) {
		return "", fmt.Errorf("%w: %q", core.ErrUnknownSample, name)
	}
	return name, nil
}

// Count returns the number of values to generate
func (e *Env) Count() (int, error) {
	n, err := e.Params.Int(KeyNumberOfValues)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", generator.ErrInvalidCount, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w, got %d", generator.ErrInvalidCount, n)
	}
	return n, nil
}

// Precision returns the number of decimal digits kept in generated values
func (e *Env) Precision() (int, error) {
	return e.Params.Int(KeyPrecision)
}

// NoiseLevel returns the standard deviation of the measurement noise
func (e *Env) NoiseLevel() (float64, error) {
	return e.Params.Float(KeyNoiseLevel)
}

// Temperature returns the experiment temperature in K
func (e *Env) Temperature() (float64, error) {
	return e.Params.Float(KeyTemperature)
}

// GasConstant returns R in J/mol/K
func (e *Env) GasConstant() (float64, error) {
	return e.Params.Float(KeyGasConstant)
}

// Generate runs the synthetic data generator on the stream of this run,
// rounding to the configured precision.
func (e *Env) Generate(fn generator.ModelFunc, params map[string]float64, count int, opts generator.Options) (*dataset.Dataset, error) {
	precision, err := e.Precision()
	if err != nil {
		return nil, err
	}
	opts.Precision = precision
	return generator.Generate(e.Stream, fn, params, count, opts)
}
