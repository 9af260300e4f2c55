package analyze

import (
	"math"
	"testing"

	"github.com/Alias1177/StockPredictor/internal/calculate"
)

func TestHeuristicScorer(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		row  calculate.FeatureRow
		want float64
	}{
		{
			name: "all bullish",
			row:  calculate.FeatureRow{Close: 100, RSI: 60, MACD: 1, MA20: 101, MA50: 99},
			want: 0.75,
		},
		{
			name: "all bearish",
			row:  calculate.FeatureRow{Close: 100, RSI: 40, MACD: -1, MA20: 99, MA50: 101},
			want: 0.25,
		},
		{
			name: "neutral band",
			row:  calculate.FeatureRow{Close: 100, RSI: 50, MACD: 0, MA20: 100, MA50: 100},
			want: 0.5,
		},
		{
			name: "RSI boundaries are exclusive",
			row:  calculate.FeatureRow{Close: 100, RSI: 55, MACD: 0, MA20: 100, MA50: 100},
			want: 0.5,
		},
		{
			name: "mixed signals",
			row:  calculate.FeatureRow{Close: 100, RSI: 70, MACD: -0.5, MA20: 101, MA50: 100},
			want: 0.55,
		},
		{
			name: "missing fields use defaults",
			row:  calculate.FeatureRow{Close: 100, RSI: nan, MACD: nan, MA20: nan, MA50: nan},
			want: 0.5,
		},
		{
			name: "missing MA50 cancels crossover",
			row:  calculate.FeatureRow{Close: 100, RSI: 60, MACD: 2, MA20: 100, MA50: nan},
			want: 0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HeuristicScorer{}.ProbabilityUp(tt.row)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ProbabilityUp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeuristicScorerBounds(t *testing.T) {
	for rsi := 0.0; rsi <= 100; rsi += 5 {
		for _, macd := range []float64{-3, 0, 3} {
			for _, ma := range []float64{90, 100, 110} {
				row := calculate.FeatureRow{Close: 100, RSI: rsi, MACD: macd, MA20: ma, MA50: 100}
				got := HeuristicScorer{}.ProbabilityUp(row)
				if got < 0.05 || got > 0.95 {
					t.Fatalf("ProbabilityUp(%+v) = %v out of [0.05, 0.95]", row, got)
				}
				if again := (HeuristicScorer{}).ProbabilityUp(row); again != got {
					t.Fatalf("ProbabilityUp() not deterministic: %v then %v", got, again)
				}
			}
		}
	}
}

func TestHeuristicScorerName(t *testing.T) {
	if got := (HeuristicScorer{}).Name(); got != "heuristic" {
		t.Errorf("Name() = %q, want heuristic", got)
	}
}
