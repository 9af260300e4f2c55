package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/Alias1177/StockPredictor/models"
)

// DB is the prediction journal backed by PostgreSQL
type DB struct {
	*sql.DB
}

// JournalEntry is one served prediction
type JournalEntry struct {
	ID         uuid.UUID
	Symbol     string
	Direction  string
	Confidence float64
	DataSource string
	Source     string
	Indicators map[string]float64
	CreatedAt  time.Time
}

// New opens a PostgreSQL connection from a connection string and creates the
// journal table if it does not exist
func New(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS prediction_journal (
			id UUID PRIMARY KEY,
			symbol TEXT NOT NULL,
			direction TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			data_source TEXT NOT NULL,
			source TEXT NOT NULL,
			indicators JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS prediction_journal_symbol_created_idx
		ON prediction_journal (symbol, created_at DESC)
	`)
	return err
}

// NewJournalEntry builds the journal row for a served prediction
func NewJournalEntry(symbol string, p *models.Prediction, at time.Time) JournalEntry {
	return JournalEntry{
		ID:         uuid.New(),
		Symbol:     symbol,
		Direction:  p.Direction,
		Confidence: p.Confidence,
		DataSource: p.DataSource,
		Source:     p.Source,
		Indicators: p.Indicators,
		CreatedAt:  at.UTC(),
	}
}

// SavePrediction appends a prediction to the journal
func (db *DB) SavePrediction(ctx context.Context, symbol string, p *models.Prediction) error {
	entry := NewJournalEntry(symbol, p, time.Now())

	indicators, err := json.Marshal(entry.Indicators)
	if err != nil {
		return fmt.Errorf("encoding indicators: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO prediction_journal (
			id, symbol, direction, confidence, data_source, source, indicators, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		entry.ID, entry.Symbol, entry.Direction, entry.Confidence, entry.DataSource, entry.Source, indicators, entry.CreatedAt)

	return err
}

// RecentPredictions returns the latest journal entries for a symbol, newest first
func (db *DB) RecentPredictions(ctx context.Context, symbol string, limit int) ([]JournalEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, symbol, direction, confidence, data_source, source, indicators, created_at
		FROM prediction_journal
		WHERE symbol = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var entry JournalEntry
		var indicators []byte
		if err := rows.Scan(
			&entry.ID, &entry.Symbol, &entry.Direction, &entry.Confidence,
			&entry.DataSource, &entry.Source, &indicators, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(indicators, &entry.Indicators); err != nil {
			return nil, fmt.Errorf("decoding indicators: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
