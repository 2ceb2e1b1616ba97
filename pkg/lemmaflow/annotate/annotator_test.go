package annotate

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/stoplist"
)

// mapLemmatizer is a fixed-dictionary lemmatizer for tests.
type mapLemmatizer map[string]string

func (m mapLemmatizer) Lemma(word string) string {
	if l, ok := m[word]; ok {
		return l
	}
	return word
}

var testLemmas = mapLemmatizer{
	"sat":     "sit",
	"dogs":    "dog",
	"running": "run",
	"ran":     "run",
	"was":     "be",
	"cats":    "cat",
}

func TestAnnotateExample(t *testing.T) {
	a := New(stoplist.NewSet([]string{"the"}), testLemmas)

	got := a.Annotate("The cat sat")
	if !reflect.DeepEqual(got, []string{"cat", "sit"}) {
		t.Errorf("Expected [cat sit], got %v", got)
	}

	got = a.Annotate("Dogs run fast")
	if !reflect.DeepEqual(got, []string{"dog", "run", "fast"}) {
		t.Errorf("Expected [dog run fast], got %v", got)
	}
}

func TestAnnotateStopwordsCaseInsensitive(t *testing.T) {
	a := New(stoplist.NewSet([]string{"the", "and"}), nil)

	got := a.Annotate("THE cat AND The dog")
	if !reflect.DeepEqual(got, []string{"cat", "dog"}) {
		t.Errorf("Expected [cat dog], got %v", got)
	}
}

func TestAnnotateStopwordLemmaKept(t *testing.T) {
	// "was" lemmatizes to "be"; only the token itself is checked against the set
	a := New(stoplist.NewSet([]string{"be"}), testLemmas)

	got := a.Annotate("it was raining be")
	if !reflect.DeepEqual(got, []string{"it", "be", "raining"}) {
		t.Errorf("Expected [it be raining], got %v", got)
	}
}

func TestAnnotateEnglishInflectedStopword(t *testing.T) {
	lem, err := NewEnglish()
	if err != nil {
		t.Fatalf("NewEnglish: %v", err)
	}
	a := New(stoplist.NewSet([]string{"be", "have"}), lem)

	got := a.Annotate("prices was high had risen")
	if len(got) != 5 {
		t.Fatalf("Expected every token kept, got %v", got)
	}
	if got[1] != "be" || got[3] != "have" {
		t.Errorf("Expected was->be and had->have to survive, got %v", got)
	}
}

func TestAnnotateDropsNonAlphabetic(t *testing.T) {
	// "2020" is a stopword and non-alphabetic; "mp3" is not a stopword but still non-alphabetic
	a := New(stoplist.NewSet([]string{"2020"}), nil)

	got := a.Annotate("mp3 players sold 2020 covid-19")
	if !reflect.DeepEqual(got, []string{"players", "sold", "covid"}) {
		t.Errorf("Expected [players sold covid], got %v", got)
	}
}

func TestAnnotateEmpty(t *testing.T) {
	a := New(nil, nil)

	got := a.Annotate("")
	if got == nil || len(got) != 0 {
		t.Errorf("Empty text should produce an empty, non-nil list, got %#v", got)
	}
}

func TestPipeMatchesAnnotate(t *testing.T) {
	a := New(stoplist.NewSet([]string{"the", "a"}), testLemmas)
	texts := []string{
		"The cat sat",
		"Dogs run fast",
		"",
		"a dog was running",
		"cats ran",
	}

	for _, batch := range []int{-1, 0, 1, 2, 3, 5, 100} {
		got, err := a.Pipe(context.Background(), texts, batch)
		if err != nil {
			t.Fatalf("batch %d: Pipe: %v", batch, err)
		}
		if len(got) != len(texts) {
			t.Fatalf("batch %d: expected %d results, got %d", batch, len(texts), len(got))
		}
		for i, text := range texts {
			if want := a.Annotate(text); !reflect.DeepEqual(got[i], want) {
				t.Errorf("batch %d, doc %d: got %v, want %v", batch, i, got[i], want)
			}
		}
	}
}

type countingLemmatizer struct {
	calls atomic.Int64
}

func (c *countingLemmatizer) Lemma(word string) string {
	c.calls.Add(1)
	return word
}

func TestPipeMemoizesWithinBatch(t *testing.T) {
	lem := &countingLemmatizer{}
	a := New(nil, lem)
	texts := []string{"news news", "news", "news", "news"}

	if _, err := a.Pipe(context.Background(), texts, 2); err != nil {
		t.Fatalf("Pipe: %v", err)
	}

	// One lookup per batch of two documents
	if got := lem.calls.Load(); got != 2 {
		t.Errorf("Expected 2 lemmatizer calls, got %d", got)
	}
}

func TestPipeCancelled(t *testing.T) {
	a := New(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Pipe(ctx, []string{"one", "two"}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestPipeEmpty(t *testing.T) {
	a := New(nil, nil)

	got, err := a.Pipe(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no results, got %v", got)
	}
}

func TestEnglishLemmatizer(t *testing.T) {
	lem, err := NewEnglish()
	if err != nil {
		t.Fatalf("NewEnglish: %v", err)
	}

	tests := map[string]string{
		"dogs":    "dog",
		"running": "run",
		"cats":    "cat",
	}
	for word, want := range tests {
		if got := lem.Lemma(word); got != want {
			t.Errorf("Lemma(%q) = %q, want %q", word, got, want)
		}
	}

	if got := lem.Lemma("zzxqv"); got != "zzxqv" {
		t.Errorf("Unknown words should be returned unchanged, got %q", got)
	}
}
