package calculate

import (
	"math"
	"time"
)

// Column names of an enriched frame
const (
	ColOpen       = "open"
	ColHigh       = "high"
	ColLow        = "low"
	ColClose      = "close"
	ColVolume     = "volume"
	ColMA20       = "MA20"
	ColMA50       = "MA50"
	ColRSI        = "RSI"
	ColMACD       = "MACD"
	ColMACDSignal = "MACD_SIGNAL"
	ColATR        = "ATR"
	ColBBMiddle   = "BB_MIDDLE"
	ColBBUpper    = "BB_UPPER"
	ColBBLower    = "BB_LOWER"
	ColStochK     = "STOCH_K"
	ColStochD     = "STOCH_D"
	ColVolChange  = "VOL_CHANGE"
)

// Frame is an ordered set of named float64 columns sharing one row index.
// Undefined cells hold NaN. A Frame returned by Enrich must be treated as read-only.
type Frame struct {
	timestamps []time.Time
	names      []string
	columns    map[string][]float64
}

func newFrame(timestamps []time.Time) *Frame {
	return &Frame{
		timestamps: timestamps,
		columns:    make(map[string][]float64),
	}
}

func (f *Frame) set(name string, values []float64) {
	if _, ok := f.columns[name]; !ok {
		f.names = append(f.names, name)
	}
	f.columns[name] = values
}

// Len returns the number of rows
func (f *Frame) Len() int {
	return len(f.timestamps)
}

// Names returns the column names in insertion order
func (f *Frame) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Column returns a copy of the named column, or nil if it does not exist
func (f *Frame) Column(name string) []float64 {
	col, ok := f.columns[name]
	if !ok {
		return nil
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out
}

// Value returns a single cell. Unknown columns and out of range rows are NaN.
func (f *Frame) Value(name string, row int) float64 {
	col, ok := f.columns[name]
	if !ok || row < 0 || row >= len(col) {
		return math.NaN()
	}
	return col[row]
}

// Timestamp returns the timestamp of a row
func (f *Frame) Timestamp(row int) time.Time {
	return f.timestamps[row]
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
