package models

import (
	"fmt"
	"time"
)

// TradingDayLayout is the date layout used by daily market-data feeds
const TradingDayLayout = "2006-01-02"

// ParseTradingDay parses a daily bar date (optionally with a clock part) as UTC.
func ParseTradingDay(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(TradingDayLayout, value, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing trading day %q: %w", value, err)
	}
	return t, nil
}
