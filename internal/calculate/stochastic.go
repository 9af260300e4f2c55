package calculate

import (
	"math"

	"github.com/Alias1177/StockPredictor/models"
)

// stochastic returns %K over kPeriod and %D as the dPeriod mean of %K.
// %K is undefined when the lookback range is flat and is clamped to [0, 100]
// for candles whose close lies outside their own high/low.
func stochastic(candles []models.Candle, kPeriod, dPeriod int) ([]float64, []float64) {
	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))
	for i, c := range candles {
		highs[i] = c.High
		lows[i] = c.Low
	}

	highest := rollingMax(highs, kPeriod)
	lowest := rollingMin(lows, kPeriod)

	k := nanSeries(len(candles))
	for i, c := range candles {
		span := highest[i] - lowest[i]
		if math.IsNaN(span) || span == 0 {
			continue
		}
		k[i] = math.Min(100, math.Max(0, (c.Close-lowest[i])/span*100))
	}

	return k, rollingMean(k, dPeriod)
}
