// Package classifier fits gradient boosted decision trees for binary "next close up"
// classification.
package classifier

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyTrainingSet is returned when there are no rows to train on
	ErrEmptyTrainingSet = errors.New("empty training set")
	// ErrSingleClass is returned when every label has the same value
	ErrSingleClass = errors.New("training labels contain a single class")
	// ErrShapeMismatch is returned when rows and labels disagree in size
	ErrShapeMismatch = errors.New("features and labels shape mismatch")
)

// ModelName is reported by a trained model as its probability source
const ModelName = "classifier"

// Trainer fits a probabilistic binary classifier. An error means no usable model.
type Trainer interface {
	Train(features [][]float64, labels []int) (*Model, error)
}

// Model is a trained additive ensemble of regression trees on the logit scale
type Model struct {
	baseMargin float64
	trees      []*node
	nFeatures  int
}

// Name identifies the model as a probability source
func (m *Model) Name() string {
	return ModelName
}

// PredictProba returns the probability that the label is 1
func (m *Model) PredictProba(features []float64) float64 {
	margin := m.baseMargin
	for _, tree := range m.trees {
		margin += tree.predict(features)
	}
	return sigmoid(margin)
}

// Trees returns the number of fitted trees
func (m *Model) Trees() int {
	return len(m.trees)
}

func validate(features [][]float64, labels []int) (int, error) {
	if len(features) == 0 {
		return 0, ErrEmptyTrainingSet
	}
	if len(features) != len(labels) {
		return 0, fmt.Errorf("%w: %d rows, %d labels", ErrShapeMismatch, len(features), len(labels))
	}

	width := len(features[0])
	positives := 0
	for i, row := range features {
		if len(row) != width {
			return 0, fmt.Errorf("%w: row %d has %d features, want %d", ErrShapeMismatch, i, len(row), width)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("row %d feature %d is not finite", i, j)
			}
		}
		switch labels[i] {
		case 0:
		case 1:
			positives++
		default:
			return 0, fmt.Errorf("label %d at row %d is not binary", labels[i], i)
		}
	}
	if positives == 0 || positives == len(labels) {
		return 0, ErrSingleClass
	}

	return width, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
