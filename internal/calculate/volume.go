package calculate

import "math"

// volumeChange is the row-over-row fractional change of volume.
// Row 0 is 0; a zero previous volume leaves the row undefined.
func volumeChange(volumes []float64) []float64 {
	out := make([]float64, len(volumes))
	for i := 1; i < len(volumes); i++ {
		prev := volumes[i-1]
		if prev == 0 || math.IsNaN(prev) {
			out[i] = math.NaN()
			continue
		}
		out[i] = (volumes[i] - prev) / prev
	}
	return out
}
