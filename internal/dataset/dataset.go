package dataset

// Dataset is the observation table produced by one lab run.
type Dataset struct {
	Columns []string
	Rows    [][]float64
}

// New creates a dataset from parallel columns of equal length
func New(columns []string, values ...[]float64) *Dataset {
	ds := &Dataset{Columns: columns}
	if len(values) == 0 {
		return ds
	}
	n := len(values[0])
	ds.Rows = make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, len(values))
		for j, col := range values {
			row[j] = col[i]
		}
		ds.Rows[i] = row
	}
	return ds
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Arity returns the number of values per row
func (d *Dataset) Arity() int {
	if len(d.Rows) == 0 {
		return len(d.Columns)
	}
	return len(d.Rows[0])
}

// Column returns a copy of column i
func (d *Dataset) Column(i int) []float64 {
	out := make([]float64, len(d.Rows))
	for r, row := range d.Rows {
		out[r] = row[i]
	}
	return out
}

// XY returns the first two columns
func (d *Dataset) XY() (x, y []float64) {
	return d.Column(0), d.Column(1)
}

// Clone returns a deep copy
func (d *Dataset) Clone() *Dataset {
	c := &Dataset{
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([][]float64, len(d.Rows)),
	}
	for i, row := range d.Rows {
		c.Rows[i] = append([]float64(nil), row...)
	}
	return c
}
