package raman_test

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/sebastiankruger/chemlab-simulator/internal/raman"
)

var truth = raman.Params{
	Peaks: []raman.Peak{
		{Position: 520, Height: 100, Width: 2},
		{Position: 575, Height: 60, Width: 3},
	},
	Background: &raman.Background{Offset: 5, Slope: 0.01},
}

// spectrum samples p on [500, 600] every 0.1 cm-1, plus Gaussian noise
func spectrum(p *raman.Params, noise float64) ([]float64, []float64) {
	x := floats.Span(make([]float64, 1001), 500, 600)
	y := p.EvalAll(x)
	if noise > 0 {
		rng := rand.New(rand.NewSource(7))
		for i := range y {
			y[i] += rng.NormFloat64() * noise
		}
	}
	return x, y
}

func newFitter(t *testing.T, p *raman.Params, noise float64) *raman.Fitter {
	t.Helper()
	x, y := spectrum(p, noise)
	f, err := raman.NewFitter(x, y)
	require.NoError(t, err)
	return f
}

func TestLorentzianIntegral(t *testing.T) {
	for _, pk := range []raman.Peak{
		{Position: 0, Height: 1, Width: 1},
		{Position: 520, Height: 100, Width: 2},
		{Position: -40, Height: 0.3, Width: 0.05},
	} {
		var prev float64
		for _, window := range []float64{100, 1000} {
			x := floats.Span(make([]float64, 400001), pk.Position-window*pk.Width, pk.Position+window*pk.Width)
			y := make([]float64, len(x))
			for i, xi := range x {
				y[i] = pk.At(xi)
			}
			area := integrate.Trapezoidal(x, y)
			assert.InDelta(t, pk.Integral(), area, 0.01*pk.Integral(), "window %g", window)
			assert.Greater(t, area, prev, "the area grows with the window")
			prev = area
		}
	}
}

func TestNewFitter(t *testing.T) {
	_, err := raman.NewFitter([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, raman.ErrLengthMismatch)

	_, err = raman.NewFitter(nil, nil)
	assert.ErrorIs(t, err, raman.ErrEmptyRange)

	f := newFitter(t, &truth, 0)
	assert.Equal(t, raman.Idle, f.State())
	assert.Equal(t, "idle", f.State().String())
}

func TestSelectRange(t *testing.T) {
	f := newFitter(t, &truth, 0)

	require.NoError(t, f.SelectRange(509.95, 530.05))
	assert.Equal(t, raman.RangeSelected, f.State())
	x, _ := f.Active()
	assert.Len(t, x, 201)
	assert.InDelta(t, 510.0, floats.Min(x), 1e-9)
	assert.InDelta(t, 530.0, floats.Max(x), 1e-9)

	err := f.SelectRange(700, 800)
	assert.ErrorIs(t, err, raman.ErrEmptyRange)
	x, _ = f.Active()
	assert.Len(t, x, 201, "a failed selection keeps the previous one")

	f.SelectAll()
	x, _ = f.Active()
	assert.Len(t, x, 1001)
}

func TestGuessPeaks_Ordering(t *testing.T) {
	// the taller line is on the right so detection finds it first
	p := &raman.Params{Peaks: []raman.Peak{
		{Position: 515, Height: 20, Width: 1},
		{Position: 550, Height: 50, Width: 1},
		{Position: 585, Height: 80, Width: 1},
	}}
	f := newFitter(t, p, 0)

	assert.Nil(t, f.GuessPeaks(0))
	assert.Equal(t, raman.Idle, f.State())

	guess := f.GuessPeaks(3)
	require.NotNil(t, guess)
	assert.Equal(t, raman.GuessReady, f.State())
	require.Len(t, guess.Peaks, 3)
	for i, want := range []float64{515, 550, 585} {
		assert.InDelta(t, want, guess.Peaks[i].Position, 1e-9)
		assert.Equal(t, 0.3, guess.Peaks[i].Width)
	}
	assert.True(t, guess.HasBackground())

	two := f.GuessPeaks(2)
	require.Len(t, two.Peaks, 2)
	assert.InDelta(t, 550, two.Peaks[0].Position, 1e-9, "the two tallest, left to right")
	assert.InDelta(t, 585, two.Peaks[1].Position, 1e-9)
}

func TestFit_RecoversParameters(t *testing.T) {
	f := newFitter(t, &truth, 0)

	got, err := f.Fit(raman.FitOptions{Peaks: 2, RemoveBackground: true})
	require.NoError(t, err)
	assert.Equal(t, raman.Fitted, f.State())
	require.Len(t, got.Peaks, 2)
	require.True(t, got.HasBackground())

	for i, want := range truth.Peaks {
		assert.InDelta(t, want.Position, got.Peaks[i].Position, 1e-4)
		assert.InEpsilon(t, want.Height, got.Peaks[i].Height, 1e-4)
		assert.InEpsilon(t, math.Abs(want.Width), math.Abs(got.Peaks[i].Width), 1e-4)
	}
	assert.InDelta(t, truth.Background.Offset, got.Background.Offset, 1e-3)
	assert.InDelta(t, truth.Background.Slope, got.Background.Slope, 1e-5)

	integrals, err := f.Integrals()
	require.NoError(t, err)
	require.Len(t, integrals, 2)
	assert.InEpsilon(t, 200*math.Pi, math.Abs(integrals[0]), 1e-4)
	assert.InEpsilon(t, 180*math.Pi, math.Abs(integrals[1]), 1e-4)

	cx, cy, err := f.FitCurve()
	require.NoError(t, err)
	assert.Len(t, cx, 5*1001)
	assert.Len(t, cy, 5*1001)
	assert.Equal(t, 500.0, cx[0])
	assert.Equal(t, 600.0, cx[len(cx)-1])

	bg, ok := f.Background()
	require.True(t, ok)
	assert.Len(t, bg, len(cx))
	assert.InDelta(t, 10, bg[0], 1e-2)
}

func TestFit_WithoutBackground(t *testing.T) {
	p := &raman.Params{Peaks: []raman.Peak{{Position: 540, Height: 10, Width: 1.5}}}
	f := newFitter(t, p, 0)
	require.NoError(t, f.SelectRange(520, 560))

	got, err := f.Fit(raman.FitOptions{Peaks: 1})
	require.NoError(t, err)
	assert.False(t, got.HasBackground())
	assert.InDelta(t, 540, got.Peaks[0].Position, 1e-6)

	_, ok := f.Background()
	assert.False(t, ok)

	cx, _, err := f.FitCurve()
	require.NoError(t, err)
	assert.Equal(t, 520.0, cx[0])
	assert.Equal(t, 560.0, cx[len(cx)-1])
}

func TestFit_Noisy(t *testing.T) {
	f := newFitter(t, &truth, 0.2)
	got, err := f.Fit(raman.FitOptions{Peaks: 2, RemoveBackground: true})
	require.NoError(t, err)
	assert.InDelta(t, 520, got.Peaks[0].Position, 0.05)
	assert.InDelta(t, 575, got.Peaks[1].Position, 0.05)
}

func TestFit_Refit(t *testing.T) {
	f := newFitter(t, &truth, 0.2)
	opts := raman.FitOptions{Peaks: 2, RemoveBackground: true}

	first, err := f.Fit(opts)
	require.NoError(t, err)
	second, err := f.Fit(opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFit_ExplicitPositions(t *testing.T) {
	f := newFitter(t, &truth, 0)
	got, err := f.Fit(raman.FitOptions{Positions: []float64{521, 574}, RemoveBackground: true})
	require.NoError(t, err)

	guess := f.Guess()
	require.NotNil(t, guess)
	assert.Equal(t, 521.0, guess.Peaks[0].Position)
	assert.Equal(t, 574.0, guess.Peaks[1].Position)
	assert.InDelta(t, 520, got.Peaks[0].Position, 1e-4)
	assert.InDelta(t, 575, got.Peaks[1].Position, 1e-4)
}

func TestFit_FixedParameters(t *testing.T) {
	f := newFitter(t, &truth, 0)
	got, err := f.Fit(raman.FitOptions{
		Peaks:            2,
		RemoveBackground: true,
		Fixed:            []string{"width_0", "position_1"},
	})
	require.NoError(t, err)

	guess := f.Guess()
	assert.Equal(t, guess.Peaks[0].Width, got.Peaks[0].Width)
	assert.Equal(t, guess.Peaks[1].Position, got.Peaks[1].Position)
	assert.InEpsilon(t, 100, got.Peaks[0].Height, 1e-4, "free parameters keep the optimum")

	for _, bad := range []string{"width_2", "depth_0", "width", "width_x", "height_-1"} {
		_, err := f.Fit(raman.FitOptions{Peaks: 2, Fixed: []string{bad}})
		assert.ErrorIs(t, err, raman.ErrUnknownParameter, bad)
	}
}

func TestFit_DidNotConverge(t *testing.T) {
	f := newFitter(t, &truth, 0.2)
	_, err := f.Fit(raman.FitOptions{Peaks: 2, RemoveBackground: true})
	require.NoError(t, err)

	_, err = f.Fit(raman.FitOptions{Peaks: 2, RemoveBackground: true, MaxEvaluations: 1})
	require.ErrorIs(t, err, raman.ErrFitDidNotConverge)
	assert.Equal(t, raman.GuessReady, f.State())
	assert.Nil(t, f.Result())
	assert.NotNil(t, f.Guess(), "the guess survives for a retry")

	_, err = f.Integrals()
	assert.ErrorIs(t, err, raman.ErrNoFit)
	_, _, err = f.FitCurve()
	assert.ErrorIs(t, err, raman.ErrNoFit)
	_, _, err = f.GuessCurve()
	assert.NoError(t, err)
	assert.Equal(t, "No fit available.", f.RenderResults())

	_, err = f.Fit(raman.FitOptions{Peaks: 2, RemoveBackground: true})
	require.NoError(t, err)
	assert.Equal(t, raman.Fitted, f.State())
}

func TestFit_Validation(t *testing.T) {
	f := newFitter(t, &truth, 0)
	_, err := f.Fit(raman.FitOptions{})
	assert.ErrorIs(t, err, raman.ErrNoPeaks)

	require.NoError(t, f.SelectRange(519.95, 520.15))
	_, err = f.Fit(raman.FitOptions{Peaks: 2})
	assert.ErrorIs(t, err, raman.ErrTooFewPoints)

	_, _, err = f.GuessCurve()
	assert.ErrorIs(t, err, raman.ErrNoGuess)
}

func TestRenderResults(t *testing.T) {
	f := newFitter(t, &truth, 0)
	assert.Equal(t, "No fit available.", f.RenderResults())

	_, err := f.Fit(raman.FitOptions{Peaks: 2, RemoveBackground: true})
	require.NoError(t, err)

	out := f.RenderResults()
	lines := strings.Split(out, "\n")
	assert.Equal(t, strings.Repeat("=", 60), lines[0])
	assert.Equal(t, "Fitting Results (2 peaks)", lines[1])
	assert.Contains(t, out, "\nPeak 1:\n  Position:  520.00 cm⁻¹\n  Height:    100.0000\n")
	assert.Contains(t, out, "\nPeak 2:\n  Position:  575.00 cm⁻¹")
	assert.Contains(t, out, "\nBackground (linear):\n  Offset: 5.0000\n  Slope:  0.010000")
	assert.Equal(t, strings.Repeat("=", 60), lines[len(lines)-1])
}

func TestReadSpectrum(t *testing.T) {
	tests := []struct {
		name  string
		input string
		x, y  []float64
	}{
		{"whitespace", "500 1.5\n501\t2.5\n", []float64{500, 501}, []float64{1.5, 2.5}},
		{"csv with header", "Raman shift,Intensity\n500,1.5\n\n501,2.5\n", []float64{500, 501}, []float64{1.5, 2.5}},
		{"comments", "# exported\n500 1\n501 2 extra\n", []float64{500, 501}, []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, err := raman.ReadSpectrum(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
		})
	}

	_, _, err := raman.ReadSpectrum(strings.NewReader("500 1\nabc def\n"))
	assert.ErrorIs(t, err, raman.ErrMalformedSpectrum)
	_, _, err = raman.ReadSpectrum(strings.NewReader("500\n"))
	assert.ErrorIs(t, err, raman.ErrMalformedSpectrum)
	_, _, err = raman.ReadSpectrum(strings.NewReader("x y\n"))
	assert.ErrorIs(t, err, raman.ErrEmptyRange)
}
