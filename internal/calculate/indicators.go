package calculate

import (
	"time"

	"github.com/Alias1177/StockPredictor/models"
)

// Indicator windows
const (
	MAFastPeriod     = 20
	MASlowPeriod     = 50
	RSIPeriod        = 14
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
	ATRPeriod        = 14
	BBPeriod         = 20
	BBStdDev         = 2.0
	StochKPeriod     = 14
	StochDPeriod     = 3
)

// MinRows is the number of candles needed for every indicator window to fill
const MinRows = MASlowPeriod

// Enrich calculates all technical indicators over an ascending candle series and
// returns a frame with the OHLCV columns plus one column per indicator, same length
// and order as the input. Undefined warm-up cells are back-filled then forward-filled.
func Enrich(candles []models.Candle) *Frame {
	n := len(candles)
	timestamps := make([]time.Time, n)
	opens := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, c := range candles {
		timestamps[i] = c.Timestamp
		opens[i] = c.Open
		highs[i] = c.High
		lows[i] = c.Low
		closes[i] = c.Close
		volumes[i] = c.Volume
	}

	macdLine, macdSignal := macd(closes, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
	bbUpper, bbMiddle, bbLower := bollingerBands(closes, BBPeriod, BBStdDev)
	stochK, stochD := stochastic(candles, StochKPeriod, StochDPeriod)

	raw := newFrame(timestamps)
	raw.set(ColOpen, opens)
	raw.set(ColHigh, highs)
	raw.set(ColLow, lows)
	raw.set(ColClose, closes)
	raw.set(ColVolume, volumes)
	raw.set(ColMA20, sma(closes, MAFastPeriod))
	raw.set(ColMA50, sma(closes, MASlowPeriod))
	raw.set(ColRSI, rsi(closes, RSIPeriod))
	raw.set(ColMACD, macdLine)
	raw.set(ColMACDSignal, macdSignal)
	raw.set(ColATR, atr(candles, ATRPeriod))
	raw.set(ColBBMiddle, bbMiddle)
	raw.set(ColBBUpper, bbUpper)
	raw.set(ColBBLower, bbLower)
	raw.set(ColStochK, stochK)
	raw.set(ColStochD, stochD)
	raw.set(ColVolChange, volumeChange(volumes))

	enriched := newFrame(timestamps)
	for _, name := range raw.names {
		enriched.set(name, FillMissing(raw.columns[name]))
	}
	return enriched
}
