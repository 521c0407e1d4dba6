package raman

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// initialWidth is the starting half width of every guessed peak
const initialWidth = 0.3

// localMaxima returns the indices of the local maxima of y. A flat top
// yields its middle sample, rounded down.
func localMaxima(y []float64) []int {
	var peaks []int
	n := len(y)
	for i := 1; i < n-1; {
		if y[i-1] < y[i] {
			ahead := i + 1
			for ahead < n-1 && y[ahead] == y[i] {
				ahead++
			}
			if y[ahead] < y[i] {
				peaks = append(peaks, (i+ahead-1)/2)
				i = ahead
				continue
			}
		}
		i++
	}
	return peaks
}

// filterByDistance drops peaks closer than distance samples to a higher one
func filterByDistance(peaks []int, y []float64, distance int) []int {
	if distance <= 1 || len(peaks) < 2 {
		return peaks
	}
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return y[peaks[order[a]]] > y[peaks[order[b]]]
	})

	keep := make([]bool, len(peaks))
	for i := range keep {
		keep[i] = true
	}
	for _, j := range order {
		if !keep[j] {
			continue
		}
		for k := j - 1; k >= 0 && peaks[j]-peaks[k] < distance; k-- {
			keep[k] = false
		}
		for k := j + 1; k < len(peaks) && peaks[k]-peaks[j] < distance; k++ {
			keep[k] = false
		}
	}

	var kept []int
	for i, p := range peaks {
		if keep[i] {
			kept = append(kept, p)
		}
	}
	return kept
}

// nearest returns the index of the x value closest to v
func nearest(x []float64, v float64) int {
	best, dist := 0, math.Inf(1)
	for i, xi := range x {
		if d := math.Abs(xi - v); d < dist {
			best, dist = i, d
		}
	}
	return best
}

// estimatePeaks builds n peaks from the highest local maxima of (x, y),
// ordered by position. With fewer maxima than n the positions are spread
// evenly over the x range instead.
func estimatePeaks(x, y []float64, n int) []Peak {
	distance := max(1, len(y)/(n+1))
	found := filterByDistance(localMaxima(y), y, distance)

	peaks := make([]Peak, 0, n)
	if len(found) >= n {
		sort.SliceStable(found, func(a, b int) bool { return y[found[a]] > y[found[b]] })
		top := found[:n]
		sort.Ints(top)
		for _, idx := range top {
			peaks = append(peaks, Peak{Position: x[idx], Height: y[idx], Width: initialWidth})
		}
		return peaks
	}

	return peaksAt(x, y, linspace(floats.Min(x), floats.Max(x), n))
}

// peaksAt places a peak at every position, with the height sampled at the
// closest data point
func peaksAt(x, y, positions []float64) []Peak {
	peaks := make([]Peak, len(positions))
	for i, pos := range positions {
		peaks[i] = Peak{Position: pos, Height: y[nearest(x, pos)], Width: initialWidth}
	}
	return peaks
}

// estimateBackground is a flat baseline at the lowest intensity
func estimateBackground(y []float64) *Background {
	return &Background{Offset: floats.Min(y), Slope: 0}
}

// linspace returns n evenly spaced values from lo to hi, both included
func linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	x := floats.Span(make([]float64, n), lo, hi)
	x[n-1] = hi
	return x
}
