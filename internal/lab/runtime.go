// Package lab holds the engine shared by every virtual laboratory: the
// parameter and metadata store, the seeded stream and data file handling.
// A Runtime wraps one Model and drives it.
package lab

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sebastiankruger/chemlab-simulator/internal/core"
	"github.com/sebastiankruger/chemlab-simulator/internal/dataset"
)

// Runtime runs experiments of one laboratory model.
// It is not safe for concurrent use.
type Runtime struct {
	env       *Env
	model     Model
	filenames *dataset.FilenameGenerator

	data  *dataset.Dataset
	files []string
}

type settings struct {
	params    map[string]any
	outputDir string
}

// Option customizes a Runtime
type Option func(*settings)

// WithParameters overrides lab defaults after setup
func WithParameters(values map[string]any) Option {
	return func(s *settings) {
		s.params = values
	}
}

// WithOutputDir sets the directory for generated file names
func WithOutputDir(dir string) Option {
	return func(s *settings) {
		s.outputDir = dir
	}
}

// New sets up model on a fresh environment seeded with the default identifier.
func New(model Model, opts ...Option) (*Runtime, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	env := newEnv(model.Name())
	env.samples = model.Samples()
	env.AddMetadata(KeyLaboratory, model.Name())
	env.AddMetadata(KeyColumns, model.Columns())

	if err := model.Setup(env); err != nil {
		return nil, fmt.Errorf("setup %s: %w", model.Name(), err)
	}
	if err := env.SetParameters(s.params); err != nil {
		return nil, err
	}

	return &Runtime{
		env:       env,
		model:     model,
		filenames: dataset.NewFilenameGenerator(s.outputDir),
	}, nil
}

func (r *Runtime) String() string {
	return "CHEM2000 Lab: " + r.model.Name()
}

// SetIdentifier reseeds the run from a student identifier
func (r *Runtime) SetIdentifier(value any) error {
	return r.env.SetIdentifier(value)
}

// SetParameters merges values into the parameter store
func (r *Runtime) SetParameters(values map[string]any) error {
	return r.env.SetParameters(values)
}

// CreateData runs the experiment and keeps the result for writing.
// The caller gets its own copy.
func (r *Runtime) CreateData() (*dataset.Dataset, error) {
	ds, err := r.model.CreateData(r.env)
	if err != nil {
		return nil, err
	}
	if len(ds.Columns) == 0 {
		ds.Columns = r.columns()
	}
	r.data = ds

	r.env.Log.Debug().
		Int("rows", ds.Len()).
		Strs("columns", ds.Columns).
		Msg("Data created")
	return ds.Clone(), nil
}

func (r *Runtime) columns() []string {
	if value, ok := r.env.Metadata.Get(KeyColumns); ok {
		if cols, ok := value.([]string); ok {
			return append([]string(nil), cols...)
		}
	}
	return r.model.Columns()
}

// WriteToFile writes the last dataset with its metadata and returns the file name.
// Without a path the output_file parameter is used, then a random name.
func (r *Runtime) WriteToFile(path string) (string, error) {
	if r.data == nil {
		return "", dataset.ErrNoData
	}
	filename := path
	if filename == "" {
		filename, _ = r.env.Params.String(KeyOutputFile)
	}
	if filename == "" {
		var err error
		if filename, err = r.filenames.Random(); err != nil {
			return "", err
		}
	}
	r.env.AddMetadata(KeyOutputFile, filename)

	if err := dataset.WriteFile(filename, r.data, r.env.Metadata); err != nil {
		return "", err
	}
	r.files = append(r.files, filename)

	r.env.Log.Info().
		Str("file", filename).
		Int("rows", r.data.Len()).
		Msg("Data file written")
	return filename, nil
}

// WriteToString renders the last dataset with its metadata
func (r *Runtime) WriteToString() (string, error) {
	if r.data == nil {
		return "", dataset.ErrNoData
	}
	return dataset.Render(r.data, r.env.Metadata), nil
}

// ReadFromFile parses a data file written by any laboratory
func (r *Runtime) ReadFromFile(path string) (*dataset.File, error) {
	f, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}
	for _, k := range f.Metadata.Keys() {
		v, _ := f.Metadata.Get(k)
		r.env.Log.Debug().Str("key", k).Interface("value", v).Msg("Metadata read")
	}
	return f, nil
}

// Cleanup removes the files written by this runtime and, when pattern is
// not empty, every file matching it.
func (r *Runtime) Cleanup(pattern string) error {
	var errs []error
	for _, f := range r.files {
		if err := os.Remove(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				r.env.Log.Warn().Str("file", f).Msg("File does not exist")
				continue
			}
			errs = append(errs, err)
		}
	}
	r.files = nil

	if pattern != "" {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return errors.Join(append(errs, err)...)
		}
		for _, m := range matches {
			if err := os.Remove(m); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Data returns a copy of the last created dataset, or nil
func (r *Runtime) Data() *dataset.Dataset {
	if r.data == nil {
		return nil
	}
	return r.data.Clone()
}

// Metadata returns the live metadata store
func (r *Runtime) Metadata() *core.Values {
	return r.env.Metadata
}

// Parameters returns the live parameter store
func (r *Runtime) Parameters() *core.Values {
	return r.env.Params
}

// Samples lists the selectable samples of the laboratory
func (r *Runtime) Samples() []string {
	return r.model.Samples()
}

// Files returns the names written so far
func (r *Runtime) Files() []string {
	return append([]string(nil), r.files...)
}

// Model returns the wrapped laboratory
func (r *Runtime) Model() Model {
	return r.model
}

// RunID identifies the current seeded run
func (r *Runtime) RunID() string {
	return r.env.RunID()
}
