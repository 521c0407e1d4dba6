package dataset

import (
	"errors"
	"fmt"
	"os"

	"github.com/sebastiankruger/chemlab-simulator/internal/core"
)

// WriteFile renders the dataset and metadata and writes them to path in one go.
func WriteFile(path string, ds *Dataset, metadata *core.Values) error {
	if ds == nil {
		return ErrNoData
	}
	if err := os.WriteFile(path, []byte(Render(ds, metadata)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, errors.Join(ErrMissingFile, err))
	}
	return nil
}

// ReadFile parses the data file at path
func ReadFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: filename is missing", ErrMissingFile)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, errors.Join(ErrMissingFile, err))
	}
	defer fh.Close()

	f, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return f, nil
}
