package analyze

import (
	"github.com/Alias1177/StockPredictor/internal/calculate"
	"github.com/Alias1177/StockPredictor/internal/classifier"
)

// ProbabilitySource turns the features of the latest candle into a probability that
// the next close is higher.
type ProbabilitySource interface {
	Name() string
	ProbabilityUp(row calculate.FeatureRow) float64
}

// modelSource adapts a trained classifier to ProbabilitySource
type modelSource struct {
	model *classifier.Model
}

func (s modelSource) Name() string {
	return s.model.Name()
}

func (s modelSource) ProbabilityUp(row calculate.FeatureRow) float64 {
	return s.model.PredictProba(row.Values())
}
