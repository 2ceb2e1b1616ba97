package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/internalerr"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/store"
)

// timeLayout is fixed-width so started_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	duration_ns INTEGER NOT NULL,
	input_path TEXT,
	docs INTEGER NOT NULL,
	chunk_size INTEGER NOT NULL,
	batch_size INTEGER NOT NULL,
	workers INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_rows (
	run_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	date TEXT,
	headline TEXT,
	lemmas TEXT NOT NULL,
	PRIMARY KEY(run_id, idx),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a run and all of its rows in one transaction
func (s *sqliteStore) SaveRun(ctx context.Context, run store.Run, rows []store.Row) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run id is required", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO runs (id, started_at, duration_ns, input_path, docs, chunk_size, batch_size, workers)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	started_at=excluded.started_at,
	duration_ns=excluded.duration_ns,
	input_path=excluded.input_path,
	docs=excluded.docs,
	chunk_size=excluded.chunk_size,
	batch_size=excluded.batch_size,
	workers=excluded.workers;
`
	_, err = tx.ExecContext(
		ctx,
		stmt,
		run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		int64(run.Duration),
		run.InputPath,
		run.Docs,
		run.ChunkSize,
		run.BatchSize,
		run.Workers,
	)
	if err != nil {
		return err
	}

	if err := replaceRows(ctx, tx, run.ID, rows); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceRows(ctx context.Context, tx *sql.Tx, runID string, rows []store.Row) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM run_rows WHERE run_id=?`, runID); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_rows (run_id, idx, date, headline, lemmas) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, row := range rows {
		lemmas := row.Lemmas
		if lemmas == nil {
			lemmas = []string{}
		}
		encoded, err := json.Marshal(lemmas)
		if err != nil {
			return err
		}
		date := ""
		if !row.Date.IsZero() {
			date = row.Date.UTC().Format(time.DateOnly)
		}
		if _, err := stmt.ExecContext(ctx, runID, row.Index, date, row.Headline, string(encoded)); err != nil {
			return err
		}
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, started_at, duration_ns, input_path, docs, chunk_size, batch_size, workers
FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	return run, true, nil
}

// ListRuns returns the most recent runs first
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, started_at, duration_ns, input_path, docs, chunk_size, batch_size, workers
FROM runs
ORDER BY started_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		run       store.Run
		startedAt string
		duration  int64
		input     sql.NullString
	)
	if err := sc.Scan(&run.ID, &startedAt, &duration, &input, &run.Docs, &run.ChunkSize, &run.BatchSize, &run.Workers); err != nil {
		return store.Run{}, err
	}
	t, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return store.Run{}, fmt.Errorf("parse started_at for run %s: %w", run.ID, err)
	}
	run.StartedAt = t
	run.Duration = time.Duration(duration)
	run.InputPath = input.String
	return run, nil
}

// GetLemmas retrieves the lemma list stored for one document of a run
func (s *sqliteStore) GetLemmas(ctx context.Context, runID string, index int) ([]string, bool, error) {
	var encoded string
	err := s.db.QueryRowContext(ctx, `SELECT lemmas FROM run_rows WHERE run_id = ? AND idx = ?`, runID, index).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var lemmas []string
	if err := json.Unmarshal([]byte(encoded), &lemmas); err != nil {
		return nil, false, fmt.Errorf("decode lemmas for run %s row %d: %w", runID, index, err)
	}
	return lemmas, true, nil
}

// CountRows returns how many rows are stored for a run
func (s *sqliteStore) CountRows(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM run_rows WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}
