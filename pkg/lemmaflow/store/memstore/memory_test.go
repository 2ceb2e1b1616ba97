package memstore

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/internalerr"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/store"
)

func TestMemstoreSaveAndGet(t *testing.T) {
	ctx := context.Background()
	st := New()
	defer st.Close()

	run := store.Run{ID: "run-1", StartedAt: time.Now(), Docs: 2, ChunkSize: 1, BatchSize: 1, Workers: 2}
	rows := []store.Row{
		{Index: 0, Headline: "a", Lemmas: []string{"cat", "sit"}},
		{Index: 1, Headline: "b", Lemmas: nil},
	}

	if err := st.SaveRun(ctx, run, rows); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, found, err := st.GetRun(ctx, "run-1")
	if err != nil || !found {
		t.Fatalf("GetRun: found=%v err=%v", found, err)
	}
	if got.Workers != 2 {
		t.Errorf("Workers mismatch: got %d", got.Workers)
	}

	lemmas, found, _ := st.GetLemmas(ctx, "run-1", 0)
	if !found || !reflect.DeepEqual(lemmas, []string{"cat", "sit"}) {
		t.Errorf("Unexpected lemmas: %v (found=%v)", lemmas, found)
	}

	lemmas, found, _ = st.GetLemmas(ctx, "run-1", 1)
	if !found || lemmas == nil || len(lemmas) != 0 {
		t.Errorf("Empty lemma list should be returned as empty slice, got %#v", lemmas)
	}

	if _, found, _ := st.GetLemmas(ctx, "run-1", 5); found {
		t.Error("Out of range index should not be found")
	}

	if n, _ := st.CountRows(ctx, "run-1"); n != 2 {
		t.Errorf("Expected 2 rows, got %d", n)
	}
}

func TestMemstoreCopiesLemmas(t *testing.T) {
	ctx := context.Background()
	st := New()

	lemmas := []string{"cat"}
	st.SaveRun(ctx, store.Run{ID: "r"}, []store.Row{{Index: 0, Lemmas: lemmas}})
	lemmas[0] = "dog"

	got, _, _ := st.GetLemmas(ctx, "r", 0)
	if got[0] != "cat" {
		t.Errorf("Store should keep its own copy, got %v", got)
	}
}

func TestMemstoreListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		st.SaveRun(ctx, store.Run{ID: id, StartedAt: base.Add(time.Duration(i) * time.Hour)}, nil)
	}

	runs, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Errorf("Unexpected order: %+v", runs)
	}
}

func TestMemstoreRequiresID(t *testing.T) {
	err := New().SaveRun(context.Background(), store.Run{}, nil)
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}
