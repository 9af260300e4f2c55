package classifier

import (
	"math"
	"math/rand"
)

// GBTrainer fits a logistic-loss gradient boosted tree ensemble.
// Each call to Train uses its own random source seeded with Seed.
type GBTrainer struct {
	Trees           int
	MaxDepth        int
	LearningRate    float64
	Subsample       float64
	ColsampleByTree float64
	Lambda          float64
	MinChildWeight  float64
	Seed            int64
}

// NewGBTrainer returns a trainer with the fixed service hyper-parameters
func NewGBTrainer() *GBTrainer {
	return &GBTrainer{
		Trees:           60,
		MaxDepth:        3,
		LearningRate:    0.1,
		Subsample:       0.8,
		ColsampleByTree: 0.8,
		Lambda:          1.0,
		MinChildWeight:  1.0,
		Seed:            0,
	}
}

// Train fits the ensemble. It returns ErrEmptyTrainingSet, ErrShapeMismatch or
// ErrSingleClass when the input cannot produce a meaningful model.
func (t *GBTrainer) Train(features [][]float64, labels []int) (*Model, error) {
	width, err := validate(features, labels)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(t.Seed))
	params := treeParams{
		maxDepth:       t.MaxDepth,
		lambda:         t.Lambda,
		minChildWeight: t.MinChildWeight,
		learningRate:   t.LearningRate,
	}

	n := len(features)
	model := &Model{nFeatures: width}
	margins := make([]float64, n)
	grad := make([]float64, n)
	hess := make([]float64, n)

	for k := 0; k < t.Trees; k++ {
		for i := range margins {
			prob := sigmoid(margins[i])
			grad[i] = prob - float64(labels[i])
			hess[i] = math.Max(prob*(1-prob), 1e-16)
		}

		rows := sampleRows(rng, n, t.Subsample)
		cols := sampleColumns(rng, width, t.ColsampleByTree)
		tree := growTree(features, grad, hess, rows, cols, 0, params)
		model.trees = append(model.trees, tree)

		for i, row := range features {
			margins[i] += tree.predict(row)
		}
	}

	return model, nil
}

func sampleRows(rng *rand.Rand, n int, ratio float64) []int {
	rows := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if ratio >= 1 || rng.Float64() < ratio {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		rows = append(rows, rng.Intn(n))
	}
	return rows
}

func sampleColumns(rng *rand.Rand, width int, ratio float64) []int {
	k := int(math.Max(1, math.Round(float64(width)*math.Min(ratio, 1))))
	cols := rng.Perm(width)[:k]
	return cols
}
