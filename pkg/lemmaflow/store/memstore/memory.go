package memstore

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/internalerr"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu   sync.RWMutex
	runs map[string]store.Run
	rows map[string]map[int]store.Row
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		runs: make(map[string]store.Run),
		rows: make(map[string]map[int]store.Row),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun stores the run and replaces any rows saved for it before.
func (s *Store) SaveRun(ctx context.Context, run store.Run, rows []store.Row) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run id is required", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byIndex := make(map[int]store.Row, len(rows))
	for _, r := range rows {
		r.Lemmas = slices.Clone(r.Lemmas)
		byIndex[r.Index] = r
	}
	s.runs[run.ID] = run
	s.rows[run.ID] = byIndex
	return nil
}

// GetRun implements store.Store.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

// ListRuns returns runs newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	runs := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].StartedAt.After(runs[j].StartedAt)
		}
		return runs[i].ID > runs[j].ID
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// GetLemmas implements store.Store.
func (s *Store) GetLemmas(ctx context.Context, runID string, index int) ([]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[runID][index]
	if !ok {
		return nil, false, nil
	}
	lemmas := slices.Clone(row.Lemmas)
	if lemmas == nil {
		lemmas = []string{}
	}
	return lemmas, true, nil
}

// CountRows implements store.Store.
func (s *Store) CountRows(ctx context.Context, runID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rows[runID]), nil
}
