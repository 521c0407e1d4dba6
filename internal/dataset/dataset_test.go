package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiankruger/chemlab-simulator/internal/core"
	"github.com/sebastiankruger/chemlab-simulator/internal/dataset"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{500, "500.0"},
		{0.0008166575, "0.0008166575"},
		{10000.000000000002, "10000.000000000002"},
		{1e-05, "1e-05"},
		{1.5e-7, "1.5e-07"},
		{0.0001, "0.0001"},
		{1e16, "1e+16"},
		{123456789012345.0, "123456789012345.0"},
		{-2.5, "-2.5"},
		{0, "0.0"},
		{0.1 + 0.2, "0.30000000000000004"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dataset.FormatFloat(tt.in), "FormatFloat(%v)", tt.in)
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "None", dataset.FormatValue(nil))
	assert.Equal(t, "Bomb Calorimetry", dataset.FormatValue("Bomb Calorimetry"))
	assert.Equal(t, "100", dataset.FormatValue(100))
	assert.Equal(t, "298.0", dataset.FormatValue(298.0))
	assert.Equal(t, "True", dataset.FormatValue(true))
	assert.Equal(t, "['Time (s)', 'Temperature (K)']", dataset.FormatValue([]string{"Time (s)", "Temperature (K)"}))
	assert.Equal(t, "(11.3, 0.9)", dataset.FormatValue([2]float64{11.3, 0.9}))
	assert.Equal(t, "[1.0, 2.5]", dataset.FormatValue([]float64{1, 2.5}))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Student ID", dataset.Label("student_ID"))
	assert.Equal(t, "Number of values", dataset.Label("number_of_values"))
	assert.Equal(t, "Tablet mass (mg)", dataset.Label("Tablet mass (mg)"))
	assert.Equal(t, "", dataset.Label(""))
}

func sampleMetadata() *core.Values {
	md := core.NewValues()
	md.Set("student_ID", 123456)
	md.Set("number_of_values", 3)
	md.Set("output_file", nil)
	md.Set("laboratory", "Surface Adsorption Lab")
	md.Set("columns", []string{"Dye added (mg)", "Dye in solution (mol/L)"})
	return md
}

func TestRender(t *testing.T) {
	ds := dataset.New([]string{"X", "Y"}, []float64{1, 2}, []float64{0.5, 1e-05})

	text := dataset.Render(ds, sampleMetadata())

	want := strings.Join([]string{
		"X,Y",
		"1.0,0.5",
		"2.0,1e-05",
		"# Student ID = 123456",
		"# Number of values = 3",
		"# Output file = None",
		"# Laboratory = Surface Adsorption Lab",
		"# Columns = ['Dye added (mg)', 'Dye in solution (mol/L)']",
		"",
	}, "\n")
	assert.Equal(t, want, text)
}

func TestRender_NoColumns(t *testing.T) {
	ds := &dataset.Dataset{Rows: [][]float64{{1.25}, {2}}}
	assert.Equal(t, "1.25\n2.0\n", dataset.Render(ds, nil))
}

func TestParse_RoundTrip(t *testing.T) {
	ds := dataset.New([]string{"Time (s)", "Absorbance"},
		[]float64{0, 2, 4, 6},
		[]float64{1.338598, 1.30123, 0.000001, 0.041535},
	)
	md := sampleMetadata()

	f, err := dataset.Parse(strings.NewReader(dataset.Render(ds, md)))
	require.NoError(t, err)

	assert.Equal(t, ds.Columns, f.Header)
	assert.Equal(t, ds.Len(), f.Data.Len())
	assert.Equal(t, ds.Arity(), f.Data.Arity())
	assert.Equal(t, ds.Rows, f.Data.Rows)

	var labels []string
	for _, k := range md.Keys() {
		labels = append(labels, dataset.Label(k))
	}
	assert.Equal(t, labels, f.Metadata.Keys())

	v, _ := f.Metadata.Get("Laboratory")
	assert.Equal(t, "Surface Adsorption Lab", v)
}

func TestParse_MetadataSeparators(t *testing.T) {
	text := "X,Y\n1,2\n# Temperature: 298\n# Sample = benzoic\n"
	f, err := dataset.Parse(strings.NewReader(text))
	require.NoError(t, err)

	v, ok := f.Metadata.Get("Temperature")
	require.True(t, ok)
	assert.Equal(t, "298", v)

	v, ok = f.Metadata.Get("Sample")
	require.True(t, ok)
	assert.Equal(t, "benzoic", v)
}

func TestParse_Errors(t *testing.T) {
	_, err := dataset.Parse(strings.NewReader("X,Y\n1,2\n# no separator here\n"))
	assert.ErrorIs(t, err, dataset.ErrUnknownSeparator)

	_, err = dataset.Parse(strings.NewReader("X,Y\n1,2\n3\n"))
	assert.ErrorIs(t, err, dataset.ErrMalformedRow)

	_, err = dataset.Parse(strings.NewReader("X,Y\n1,abc\n"))
	assert.ErrorIs(t, err, dataset.ErrMalformedRow)

	_, err = dataset.Parse(strings.NewReader("# Laboratory = x\n"))
	assert.ErrorIs(t, err, dataset.ErrMalformedRow)
}

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.csv")
	ds := dataset.New([]string{"X", "Y"}, []float64{10.5, 11}, []float64{24.1, 25.43})

	require.NoError(t, dataset.WriteFile(path, ds, sampleMetadata()))

	f, err := dataset.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ds.Rows, f.Data.Rows)

	_, err = dataset.ReadFile(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, dataset.ErrMissingFile)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = dataset.ReadFile("")
	assert.ErrorIs(t, err, dataset.ErrMissingFile)

	assert.ErrorIs(t, dataset.WriteFile(path, nil, nil), dataset.ErrNoData)
	assert.ErrorIs(t, dataset.WriteFile(filepath.Join(dir, "nope", "x.csv"), ds, nil), dataset.ErrMissingFile)
}

func TestFilenameGenerator(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.4.csv"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.x.csv"), nil, 0o644))

	g := dataset.NewFilenameGenerator(dir)
	assert.Equal(t, 4, g.CurrentIndex())
	assert.Equal(t, filepath.Join(dir, "data.5.csv"), g.Next())
	assert.Equal(t, filepath.Join(dir, "data.5.csv"), g.Current())

	name, err := g.Random()
	require.NoError(t, err)
	base := filepath.Base(name)
	assert.Regexp(t, `^data\.[A-Za-z0-9]{12}\.csv$`, base)

	other, err := g.Random()
	require.NoError(t, err)
	assert.NotEqual(t, name, other)

	require.NoError(t, os.WriteFile(other, []byte("X\n1\n"), 0o644))
	dest := filepath.Join(dir, "copy.txt")
	require.NoError(t, g.CopyLast(dest))
	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "X\n1\n", string(content))

	require.NoError(t, g.DeleteFiles())
	assert.Equal(t, -1, g.CurrentIndex())
	matches, _ := filepath.Glob(filepath.Join(dir, "data.*.csv"))
	assert.Empty(t, matches)
}

func TestDatasetHelpers(t *testing.T) {
	ds := dataset.New([]string{"X", "Y"}, []float64{1, 2, 3}, []float64{4, 5, 6})
	x, y := ds.XY()
	assert.Equal(t, []float64{1, 2, 3}, x)
	assert.Equal(t, []float64{4, 5, 6}, y)

	c := ds.Clone()
	c.Rows[0][0] = 99
	assert.Equal(t, 1.0, ds.Rows[0][0])
	assert.Equal(t, 2, (&dataset.Dataset{Columns: []string{"a", "b"}}).Arity())
}
