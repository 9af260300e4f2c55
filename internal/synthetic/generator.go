package synthetic

import (
	"math"
	"math/rand"
	"time"

	"github.com/Alias1177/StockPredictor/models"
)

// DefaultSeed is the seed used when none is configured
const DefaultSeed int64 = 42

// Generate produces n daily candles ending at end (truncated to the day), following a
// seeded gaussian random walk around 100. The same seed and end always yield the same
// series.
func Generate(n int, seed int64, end time.Time) []models.Candle {
	if n <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	end = end.UTC().Truncate(24 * time.Hour)

	candles := make([]models.Candle, n)
	price := 100.0
	for i := 0; i < n; i++ {
		price += rng.NormFloat64()
		closePrice := math.Max(price, 1)

		candles[i] = models.Candle{
			Timestamp: end.AddDate(0, 0, i-n+1),
			Open:      closePrice + rng.NormFloat64()*0.5,
			High:      closePrice + rng.Float64()*2,
			Low:       closePrice - rng.Float64()*2,
			Close:     closePrice,
			Volume:    float64(1000 + rng.Intn(4000)),
		}
	}

	return candles
}
