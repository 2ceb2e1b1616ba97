package store

import (
	"context"
	"time"
)

// Store persists annotation runs and their per-document lemmas
type Store interface {
	Close() error

	// Runs
	SaveRun(ctx context.Context, run Run, rows []Row) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Rows
	GetLemmas(ctx context.Context, runID string, index int) ([]string, bool, error)
	CountRows(ctx context.Context, runID string) (int, error)
}

// Run describes one execution of the pipeline
type Run struct {
	ID        string // ULID
	StartedAt time.Time
	Duration  time.Duration
	InputPath string
	Docs      int
	ChunkSize int
	BatchSize int
	Workers   int
}

// Row is one stored document result. Index is the document's position in
// the run's input.
type Row struct {
	Index    int
	Date     time.Time
	Headline string
	Lemmas   []string
}
