package calculate

// macd returns the MACD line (fast EMA minus slow EMA) and its signal EMA.
func macd(closes []float64, fastPeriod, slowPeriod, signalPeriod int) ([]float64, []float64) {
	fast := ema(closes, fastPeriod)
	slow := ema(closes, slowPeriod)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}

	return line, ema(line, signalPeriod)
}
