package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/polishai/polish/internal/enhance"
)

// Record is one completed enhancement run.
type Record struct {
	ID             string
	CreatedAt      time.Time
	Type           string
	Tone           string
	Model          string
	Score          int
	Confidence     int
	OriginalLength int
	EnhancedLength int
	DurationMs     int64
	Stages         int
}

// RecordOf builds the stored row for a completed run.
func RecordOf(req enhance.Request, res *enhance.Result) Record {
	return Record{
		Type:           string(req.Type),
		Tone:           string(req.Tone),
		Model:          res.ModelUsed,
		Score:          res.QualityScore,
		Confidence:     res.Confidence,
		OriginalLength: res.OriginalLength,
		EnhancedLength: res.EnhancedLength,
		DurationMs:     res.ProcessingTimeMs,
		Stages:         res.Stages,
	}
}

// Store keeps run history in a local DuckDB database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS enhancements (
	id VARCHAR PRIMARY KEY,
	created_at TIMESTAMP NOT NULL,
	type VARCHAR NOT NULL,
	tone VARCHAR NOT NULL,
	model VARCHAR NOT NULL,
	score INTEGER NOT NULL,
	confidence INTEGER NOT NULL,
	original_length INTEGER NOT NULL,
	enhanced_length INTEGER NOT NULL,
	duration_ms BIGINT NOT NULL,
	stages INTEGER NOT NULL
)`

// Open opens the history database at path, creating the file and schema as
// needed. An empty path opens an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Insert records a completed run and returns its ID, generating one when
// the record has none.
func (s *Store) Insert(ctx context.Context, rec Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO enhancements
			(id, created_at, type, tone, model, score, confidence, original_length, enhanced_length, duration_ms, stages)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rec.ID, rec.CreatedAt, rec.Type, rec.Tone, rec.Model, rec.Score, rec.Confidence,
		rec.OriginalLength, rec.EnhancedLength, rec.DurationMs, rec.Stages,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert history record: %w", err)
	}

	return rec.ID, nil
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, type, tone, model, score, confidence, original_length, enhanced_length, duration_ms, stages
		FROM enhancements
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.CreatedAt, &rec.Type, &rec.Tone, &rec.Model,
			&rec.Score, &rec.Confidence, &rec.OriginalLength, &rec.EnhancedLength,
			&rec.DurationMs, &rec.Stages,
		); err != nil {
			continue
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}
