package calculate

import "math"

// rsi computes the simple-average relative strength index.
// The first delta is taken as zero, so the first defined row is period-1.
func rsi(closes []float64, period int) []float64 {
	n := len(closes)
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		switch {
		case change > 0:
			gains[i] = change
		case change < 0:
			losses[i] = -change
		case math.IsNaN(change):
			gains[i], losses[i] = math.NaN(), math.NaN()
		}
	}

	avgGain := rollingMean(gains, period)
	avgLoss := rollingMean(losses, period)

	out := nanSeries(n)
	for i := range out {
		out[i] = rsiFromAverages(avgGain[i], avgLoss[i])
	}
	return out
}

func rsiFromAverages(gain, loss float64) float64 {
	switch {
	case math.IsNaN(gain) || math.IsNaN(loss):
		return math.NaN()
	case loss == 0 && gain == 0:
		return 50.0 // flat window
	case loss == 0:
		return 100.0
	}

	rs := gain / loss
	return 100.0 - (100.0 / (1.0 + rs))
}
