package statistics_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiankruger/chemlab-simulator/internal/core"
	"github.com/sebastiankruger/chemlab-simulator/internal/lab"
	"github.com/sebastiankruger/chemlab-simulator/internal/labs/statistics"
)

func newRuntime(t *testing.T, params map[string]any) *lab.Runtime {
	t.Helper()
	rt, err := lab.New(statistics.New(), lab.WithParameters(params))
	require.NoError(t, err)
	return rt
}

func TestModels(t *testing.T) {
	assert.InDelta(t, 24.7, statistics.Line(2, map[string]float64{"m": 12.3, "q": 0.1}), 1e-12)

	p := statistics.Catalog[statistics.NonLinearFit].Params
	assert.InDelta(t, p["E0"], statistics.Murnaghan(p["V0"], p), 1e-9, "minimum energy at the equilibrium volume")
	assert.Greater(t, statistics.Murnaghan(60, p), p["E0"])
	assert.Greater(t, statistics.Murnaghan(130, p), p["E0"])
}

func TestCreateData_RequiresSample(t *testing.T) {
	rt := newRuntime(t, nil)
	_, err := rt.CreateData()
	assert.ErrorIs(t, err, core.ErrSampleNotSelected)
}

func TestCreateData_Replicates(t *testing.T) {
	for _, name := range []string{statistics.Averages, statistics.Propagation, statistics.Comparison} {
		t.Run(name, func(t *testing.T) {
			rt := newRuntime(t, map[string]any{lab.KeySample: name})
			ds, err := rt.CreateData()
			require.NoError(t, err)
			require.Equal(t, 10, ds.Len())
			require.Equal(t, 2, ds.Arity())
			assert.Equal(t, []string{"X", "Y"}, ds.Columns)

			for _, row := range ds.Rows {
				for _, v := range row {
					assert.Equal(t, core.Round(v, 3), v)
				}
			}
			precision, err := rt.Parameters().Int(lab.KeyPrecision)
			require.NoError(t, err)
			assert.Equal(t, 3, precision)

			sample, _ := rt.Metadata().Get(lab.KeySample)
			assert.Equal(t, name, sample)
		})
	}
}

func TestCreateData_ExpectedValue(t *testing.T) {
	rt := newRuntime(t, map[string]any{lab.KeySample: statistics.Averages})
	_, err := rt.CreateData()
	require.NoError(t, err)

	expected, ok := rt.Metadata().Get(statistics.KeyExpectedValue)
	require.True(t, ok)
	assert.Equal(t, [2]float64{1.0, 10.0}, expected)

	out, err := rt.WriteToString()
	require.NoError(t, err)
	assert.Contains(t, out, "# Expected value = (1.0, 10.0)")
}

func TestCreateData_LinearFit(t *testing.T) {
	rt := newRuntime(t, map[string]any{
		lab.KeySample:         statistics.LinearFit,
		lab.KeyNumberOfValues: 50,
	})
	ds, err := rt.CreateData()
	require.NoError(t, err)
	require.Equal(t, 50, ds.Len())

	noise, err := rt.Parameters().Float(lab.KeyNoiseLevel)
	require.NoError(t, err)
	assert.Equal(t, 5.0, noise, "the exercise noise persists")

	x, _ := ds.XY()
	assert.True(t, sort.Float64sAreSorted(x))
	assert.GreaterOrEqual(t, x[0], 0.0)
	assert.LessOrEqual(t, x[49], 10.0)
}

func TestCreateData_NonLinearFit(t *testing.T) {
	rt := newRuntime(t, map[string]any{lab.KeySample: statistics.NonLinearFit})
	ds, err := rt.CreateData()
	require.NoError(t, err)

	x, _ := ds.XY()
	for _, v := range x {
		assert.GreaterOrEqual(t, v, 50.0)
		assert.LessOrEqual(t, v, 140.0)
	}
}

func outliers(ds [][]float64, threshold float64) []float64 {
	var devs []float64
	for _, row := range ds {
		if d := row[1] - statistics.Line(row[0], map[string]float64{"m": 2.3, "q": 0.1}); math.Abs(d) > threshold {
			devs = append(devs, d)
		}
	}
	return devs
}

func TestCreateData_Outlier(t *testing.T) {
	rt := newRuntime(t, map[string]any{
		lab.KeySample:     statistics.OutlierSearch,
		lab.KeyNoiseLevel: 0.0,
	})
	ds, err := rt.CreateData()
	require.NoError(t, err)
	require.Equal(t, 10, ds.Len())

	devs := outliers(ds.Rows, 1)
	require.Len(t, devs, 1)
	assert.InDelta(t, 2.0, devs[0], 1e-3)
}

func TestCreateData_OutlierWithNoise(t *testing.T) {
	for id := 1; id <= 20; id++ {
		rt := newRuntime(t, map[string]any{
			lab.KeySample:     statistics.OutlierSearch,
			lab.KeyNoiseLevel: 0.1,
		})
		require.NoError(t, rt.SetIdentifier(id))
		ds, err := rt.CreateData()
		require.NoError(t, err)
		assert.Len(t, outliers(ds.Rows, 1), 1, "student %d", id)
	}
}

func TestCreateData_Deterministic(t *testing.T) {
	run := func(id int) [][]float64 {
		rt := newRuntime(t, map[string]any{lab.KeySample: statistics.Comparison})
		require.NoError(t, rt.SetIdentifier(id))
		ds, err := rt.CreateData()
		require.NoError(t, err)
		return ds.Rows
	}
	assert.Equal(t, run(1234), run(1234))
	assert.NotEqual(t, run(1234), run(4321))
}
