package calculate

import (
	"math"
	"testing"
)

func sameSeries(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) && math.IsNaN(b[i]) {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFillMissing(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name  string
		input []float64
		want  []float64
	}{
		{name: "leading gap back-filled", input: []float64{nan, nan, 3, 4}, want: []float64{3, 3, 3, 4}},
		{name: "inner gap takes next value", input: []float64{1, nan, nan, 4}, want: []float64{1, 4, 4, 4}},
		{name: "trailing gap forward-filled", input: []float64{1, 2, nan, nan}, want: []float64{1, 2, 2, 2}},
		{name: "all undefined stays undefined", input: []float64{nan, nan}, want: []float64{nan, nan}},
		{name: "empty", input: []float64{}, want: []float64{}},
		{name: "already defined", input: []float64{1, 2, 3}, want: []float64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FillMissing(tt.input)
			if !sameSeries(got, tt.want) {
				t.Errorf("FillMissing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFillMissingIdempotent(t *testing.T) {
	nan := math.NaN()
	inputs := [][]float64{
		{nan, 1, nan, nan, 5, nan},
		{nan, nan, nan},
		{7, nan, 9},
	}

	for _, input := range inputs {
		once := FillMissing(input)
		twice := FillMissing(once)
		if !sameSeries(once, twice) {
			t.Errorf("FillMissing twice = %v, once = %v", twice, once)
		}
	}
}

func TestFillMissingDoesNotMutate(t *testing.T) {
	input := []float64{math.NaN(), 2}
	FillMissing(input)
	if !math.IsNaN(input[0]) {
		t.Error("FillMissing() mutated its input")
	}
}
