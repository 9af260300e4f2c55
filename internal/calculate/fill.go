package calculate

import "math"

// FillMissing returns a copy of values where every NaN takes the nearest following
// defined value, then any NaN still left takes the nearest preceding one.
// An all-NaN column stays all-NaN. Applying it twice is the same as applying it once.
func FillMissing(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)

	next := math.NaN()
	for i := len(out) - 1; i >= 0; i-- {
		if math.IsNaN(out[i]) {
			out[i] = next
		} else {
			next = out[i]
		}
	}

	prev := math.NaN()
	for i := range out {
		if math.IsNaN(out[i]) {
			out[i] = prev
		} else {
			prev = out[i]
		}
	}

	return out
}
