package analyze

import (
	"math"

	"github.com/Alias1177/StockPredictor/internal/calculate"
)

// HeuristicName is reported by the rule-based probability source
const HeuristicName = "heuristic"

// Heuristic probability bounds
const (
	minHeuristicProbability = 0.05
	maxHeuristicProbability = 0.95
)

// HeuristicScorer estimates the probability of an up move from RSI, MACD and the
// MA20/MA50 crossover. It is used when no trained classifier is available.
type HeuristicScorer struct{}

// Name identifies the scorer as a probability source
func (HeuristicScorer) Name() string {
	return HeuristicName
}

// ProbabilityUp starts at 0.5, adds ±0.10 for RSI above 55 / below 45, ±0.10 for the
// MACD sign and ±0.05 for MA20 above / below MA50, then clamps to [0.05, 0.95].
// Undefined fields default to RSI 50, MACD 0 and MA20/MA50 equal to close.
func (HeuristicScorer) ProbabilityUp(row calculate.FeatureRow) float64 {
	rsi := orDefault(row.RSI, 50)
	macd := orDefault(row.MACD, 0)
	ma20 := orDefault(row.MA20, row.Close)
	ma50 := orDefault(row.MA50, row.Close)

	score := 0.5

	// RSI
	if rsi > 55 {
		score += 0.10
	} else if rsi < 45 {
		score -= 0.10
	}

	// MACD
	if macd > 0 {
		score += 0.10
	} else if macd < 0 {
		score -= 0.10
	}

	// Moving average crossover
	if ma20 > ma50 {
		score += 0.05
	} else if ma20 < ma50 {
		score -= 0.05
	}

	return math.Max(minHeuristicProbability, math.Min(maxHeuristicProbability, score))
}

func orDefault(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return v
}
