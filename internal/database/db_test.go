package database

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Alias1177/StockPredictor/models"
)

func TestNewJournalEntry(t *testing.T) {
	p := &models.Prediction{
		Direction:  models.DirectionDown,
		Confidence: 0.6123,
		Indicators: map[string]float64{"RSI": 41.2},
		DataSource: models.DataSourceReal,
		Source:     "classifier",
	}
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("EST", -5*3600))

	entry := NewJournalEntry("IBM", p, at)
	if entry.ID == uuid.Nil {
		t.Error("ID is nil")
	}
	if entry.Symbol != "IBM" || entry.Direction != "DOWN" || entry.Confidence != 0.6123 {
		t.Errorf("entry = %+v", entry)
	}
	if entry.DataSource != "real" || entry.Source != "classifier" || entry.Indicators["RSI"] != 41.2 {
		t.Errorf("entry = %+v", entry)
	}
	if entry.CreatedAt.Location() != time.UTC || !entry.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v in UTC", entry.CreatedAt, at)
	}

	if other := NewJournalEntry("IBM", p, at); other.ID == entry.ID {
		t.Error("two entries share an ID")
	}
}
