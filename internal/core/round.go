package core

import (
	"math"
	"strconv"
)

// Round rounds value to precision decimal digits.
// The exact binary value is rounded, ties going to the even digit, so
// 0.125 becomes 0.12 and 2.675 becomes 2.67.
func Round(value float64, precision int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	if precision < 0 {
		scale := math.Pow(10, float64(-precision))
		return math.RoundToEven(value/scale) * scale
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', precision, 64), 64)
	if err != nil {
		return value
	}
	return rounded
}

// RoundAll rounds every value in place and returns the slice.
func RoundAll(values []float64, precision int) []float64 {
	for i, v := range values {
		values[i] = Round(v, precision)
	}
	return values
}
