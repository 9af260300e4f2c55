package models

import "context"

// CandleClient fetches an ascending daily OHLCV series for a symbol.
// Any failure, including an empty or malformed response, is reported as an error.
type CandleClient interface {
	GetCandles(ctx context.Context, symbol string) ([]Candle, error)
}
