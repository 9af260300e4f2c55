package calculate

// bollingerBands returns upper, middle and lower bands around the trailing SMA.
func bollingerBands(closes []float64, period int, stdDev float64) ([]float64, []float64, []float64) {
	middle := sma(closes, period)
	sd := rollingSampleStd(closes, period)

	upper := make([]float64, len(closes))
	lower := make([]float64, len(closes))
	for i := range closes {
		upper[i] = middle[i] + sd[i]*stdDev
		lower[i] = middle[i] - sd[i]*stdDev
	}

	return upper, middle, lower
}
