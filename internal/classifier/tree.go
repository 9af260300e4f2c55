package classifier

import "sort"

// node is a binary regression tree node; leaves carry the shrunken weight.
type node struct {
	leaf      bool
	weight    float64
	feature   int
	threshold float64
	left      *node
	right     *node
}

func (n *node) predict(features []float64) float64 {
	for !n.leaf {
		if features[n.feature] < n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.weight
}

type treeParams struct {
	maxDepth       int
	lambda         float64
	minChildWeight float64
	learningRate   float64
}

type split struct {
	gain      float64
	feature   int
	threshold float64
}

// growTree builds a tree on the second order approximation of the loss: every split
// maximises G_L²/(H_L+λ) + G_R²/(H_R+λ) − G²/(H+λ), leaves take −G/(H+λ).
func growTree(x [][]float64, grad, hess []float64, rows, features []int, depth int, p treeParams) *node {
	var g, h float64
	for _, r := range rows {
		g += grad[r]
		h += hess[r]
	}

	if depth < p.maxDepth && len(rows) > 1 {
		if best, ok := bestSplit(x, grad, hess, rows, features, g, h, p); ok {
			var left, right []int
			for _, r := range rows {
				if x[r][best.feature] < best.threshold {
					left = append(left, r)
				} else {
					right = append(right, r)
				}
			}
			return &node{
				feature:   best.feature,
				threshold: best.threshold,
				left:      growTree(x, grad, hess, left, features, depth+1, p),
				right:     growTree(x, grad, hess, right, features, depth+1, p),
			}
		}
	}

	return &node{leaf: true, weight: -g / (h + p.lambda) * p.learningRate}
}

func bestSplit(x [][]float64, grad, hess []float64, rows, features []int, g, h float64, p treeParams) (split, bool) {
	parent := g * g / (h + p.lambda)
	best := split{gain: 0}
	found := false

	sorted := make([]int, len(rows))
	for _, f := range features {
		copy(sorted, rows)
		sort.SliceStable(sorted, func(a, b int) bool {
			return x[sorted[a]][f] < x[sorted[b]][f]
		})

		var gl, hl float64
		for i := 0; i < len(sorted)-1; i++ {
			r := sorted[i]
			gl += grad[r]
			hl += hess[r]

			cur, next := x[r][f], x[sorted[i+1]][f]
			if cur == next {
				continue
			}
			hr := h - hl
			if hl < p.minChildWeight || hr < p.minChildWeight {
				continue
			}
			gr := g - gl
			gain := 0.5 * (gl*gl/(hl+p.lambda) + gr*gr/(hr+p.lambda) - parent)
			if gain > best.gain+1e-12 {
				best = split{gain: gain, feature: f, threshold: cur + (next-cur)/2}
				found = true
			}
		}
	}

	return best, found
}
