package calculate

import (
	"math"

	"github.com/Alias1177/StockPredictor/models"
)

// trueRange is the greatest of high-low, |high-prev close| and |low-prev close|.
// The first candle has no previous close and uses high-low.
func trueRange(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		highLow := c.High - c.Low
		if i == 0 {
			out[i] = highLow
			continue
		}
		prevClose := candles[i-1].Close
		highPrevClose := math.Abs(c.High - prevClose)
		lowPrevClose := math.Abs(c.Low - prevClose)

		out[i] = math.Max(highLow, math.Max(highPrevClose, lowPrevClose))
	}
	return out
}

func atr(candles []models.Candle, period int) []float64 {
	return rollingMean(trueRange(candles), period)
}
