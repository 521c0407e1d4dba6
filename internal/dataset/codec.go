package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sebastiankruger/chemlab-simulator/internal/core"
)

// File is the parsed content of a data file.
type File struct {
	Data     *Dataset
	Header   []string
	Metadata *core.Values
}

// Render writes the dataset as comma separated text followed by the
// metadata block. The header line is omitted when no columns are known.
func Render(ds *Dataset, metadata *core.Values) string {
	var b strings.Builder
	if ds != nil {
		if len(ds.Columns) > 0 {
			b.WriteString(strings.Join(ds.Columns, ","))
			b.WriteByte('\n')
		}
		for _, row := range ds.Rows {
			b.WriteString(joinFloats(row, ","))
			b.WriteByte('\n')
		}
	}
	if metadata != nil {
		for _, key := range metadata.Keys() {
			value, _ := metadata.Get(key)
			fmt.Fprintf(&b, "# %s = %s\n", Label(key), FormatValue(value))
		}
	}
	return b.String()
}

// Parse reads text produced by Render. Metadata values are kept as strings.
func Parse(r io.Reader) (*File, error) {
	f := &File{Metadata: core.NewValues()}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			key, value, err := parseMetadataLine(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			f.Metadata.Set(key, value)
			continue
		}
		if f.Header == nil {
			f.Header = splitCells(line)
			continue
		}
		row, err := parseRow(line, len(f.Header))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if f.Data == nil {
			f.Data = &Dataset{Columns: f.Header}
		}
		f.Data.Rows = append(f.Data.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if f.Header == nil {
		return nil, fmt.Errorf("%w: no header line", ErrMalformedRow)
	}
	if f.Data == nil {
		f.Data = &Dataset{Columns: f.Header}
	}
	return f, nil
}

// parseMetadataLine splits a comment line on the first ':' when there is one,
// otherwise on the first '='.
func parseMetadataLine(line string) (string, string, error) {
	body := strings.TrimSpace(strings.ReplaceAll(line, "#", ""))
	sep := ":"
	if !strings.Contains(body, sep) {
		sep = "="
	}
	key, value, found := strings.Cut(body, sep)
	if !found {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownSeparator, line)
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), nil
}

func parseRow(line string, arity int) ([]float64, error) {
	cells := splitCells(line)
	if len(cells) != arity {
		return nil, fmt.Errorf("%w: got %d values, header has %d", ErrMalformedRow, len(cells), arity)
	}
	row := make([]float64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrMalformedRow, cell)
		}
		row[i] = v
	}
	return row, nil
}

func splitCells(line string) []string {
	cells := strings.Split(line, ",")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}
