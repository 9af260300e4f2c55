package models

import (
	"time"
)

// Direction values returned in a prediction
const (
	DirectionUp   = "UP"
	DirectionDown = "DOWN"
)

// Data source values returned in a prediction
const (
	DataSourceReal      = "real"
	DataSourceSynthetic = "synthetic"
)

// Candle represents a single OHLCV price candle
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// Prediction is the payload returned for a predict request
type Prediction struct {
	Direction  string             `json:"direction"`  // UP, DOWN
	Confidence float64            `json:"confidence"` // 0.5-1.0, 4 decimals
	Indicators map[string]float64 `json:"indicators"`
	DataSource string             `json:"data_source"` // real, synthetic

	// Source names the probability source that produced the prediction
	// (classifier or heuristic). Not part of the wire format.
	Source string `json:"-"`
}

// Health is the liveness probe payload
type Health struct {
	OK      bool      `json:"ok"`
	Service string    `json:"service"`
	Time    time.Time `json:"time"`
}
