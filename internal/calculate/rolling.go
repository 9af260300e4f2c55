package calculate

import (
	"math"

	"github.com/markcheno/go-talib"
)

// sma is the trailing simple moving average; rows before the window fills are NaN.
// Input must be NaN-free, use rollingMean otherwise.
func sma(values []float64, window int) []float64 {
	if len(values) < window {
		return nanSeries(len(values))
	}
	out := talib.Sma(values, window)
	maskWarmup(out, window)
	return out
}

// rollingMax and rollingMin return the trailing extreme over window rows.
func rollingMax(values []float64, window int) []float64 {
	if len(values) < window {
		return nanSeries(len(values))
	}
	out := talib.Max(values, window)
	maskWarmup(out, window)
	return out
}

func rollingMin(values []float64, window int) []float64 {
	if len(values) < window {
		return nanSeries(len(values))
	}
	out := talib.Min(values, window)
	maskWarmup(out, window)
	return out
}

// rollingSampleStd is the trailing standard deviation with n-1 in the denominator.
func rollingSampleStd(values []float64, window int) []float64 {
	if len(values) < window || window < 2 {
		return nanSeries(len(values))
	}
	// talib.Var is the population variance
	variance := talib.Var(values, window)
	scale := float64(window) / float64(window-1)
	out := make([]float64, len(values))
	for i, v := range variance {
		out[i] = math.Sqrt(math.Max(v*scale, 0))
	}
	maskWarmup(out, window)
	return out
}

// rollingMean recomputes every window, so a NaN only poisons the windows it falls in
// and an all-zero window is exactly zero.
func rollingMean(values []float64, window int) []float64 {
	out := nanSeries(len(values))
	for i := window - 1; i < len(values); i++ {
		out[i] = average(values[i-window+1 : i+1])
	}
	return out
}

func maskWarmup(values []float64, window int) {
	for i := 0; i < window-1 && i < len(values); i++ {
		values[i] = math.NaN()
	}
}

// average calculates simple average
func average(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	var sum float64
	for _, value := range values {
		sum += value
	}

	return sum / float64(len(values))
}
