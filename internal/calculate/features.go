package calculate

import "math"

// FeatureColumns is the ordered feature set fed to the classifier
var FeatureColumns = []string{
	ColClose, ColMA20, ColMA50, ColRSI, ColMACD, ColMACDSignal, ColATR,
	ColVolChange, ColBBUpper, ColBBLower, ColBBMiddle, ColStochK, ColStochD,
}

// FeatureRow holds the features of one frame row
type FeatureRow struct {
	Close      float64
	MA20       float64
	MA50       float64
	RSI        float64
	MACD       float64
	MACDSignal float64
	ATR        float64
	VolChange  float64
	BBUpper    float64
	BBLower    float64
	BBMiddle   float64
	StochK     float64
	StochD     float64
}

// Values returns the features in FeatureColumns order
func (r FeatureRow) Values() []float64 {
	return []float64{
		r.Close, r.MA20, r.MA50, r.RSI, r.MACD, r.MACDSignal, r.ATR,
		r.VolChange, r.BBUpper, r.BBLower, r.BBMiddle, r.StochK, r.StochD,
	}
}

// Defined reports whether no feature is NaN
func (r FeatureRow) Defined() bool {
	for _, v := range r.Values() {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Features extracts the feature row at index i
func (f *Frame) Features(i int) FeatureRow {
	return FeatureRow{
		Close:      f.Value(ColClose, i),
		MA20:       f.Value(ColMA20, i),
		MA50:       f.Value(ColMA50, i),
		RSI:        f.Value(ColRSI, i),
		MACD:       f.Value(ColMACD, i),
		MACDSignal: f.Value(ColMACDSignal, i),
		ATR:        f.Value(ColATR, i),
		VolChange:  f.Value(ColVolChange, i),
		BBUpper:    f.Value(ColBBUpper, i),
		BBLower:    f.Value(ColBBLower, i),
		BBMiddle:   f.Value(ColBBMiddle, i),
		StochK:     f.Value(ColStochK, i),
		StochD:     f.Value(ColStochD, i),
	}
}

// Last returns the feature row of the most recent candle
func (f *Frame) Last() FeatureRow {
	return f.Features(f.Len() - 1)
}

// BuildLabels returns label[i] = 1 when the next close is strictly higher, else 0.
// The result has one entry less than the frame; the last row has no label.
func BuildLabels(f *Frame) []int {
	if f.Len() < 2 {
		return nil
	}
	labels := make([]int, f.Len()-1)
	for i := range labels {
		if f.Value(ColClose, i+1) > f.Value(ColClose, i) {
			labels[i] = 1
		}
	}
	return labels
}

// TrainingSet returns the feature matrix and labels of every labelled row whose
// features and close transition are all defined.
func TrainingSet(f *Frame) ([][]float64, []int) {
	labels := BuildLabels(f)
	features := make([][]float64, 0, len(labels))
	targets := make([]int, 0, len(labels))
	for i, label := range labels {
		if math.IsNaN(f.Value(ColClose, i+1)) {
			continue
		}
		row := f.Features(i)
		if !row.Defined() {
			continue
		}
		features = append(features, row.Values())
		targets = append(targets, label)
	}
	return features, targets
}
