package analytics

import (
	"testing"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/stoplist"
)

func TestAnalyzerCounts(t *testing.T) {
	a := NewAnalyzer()
	a.ProcessAll([][]string{
		{"market", "rally", "market"},
		{"market", "fall"},
		{},
	})

	stats := a.Snapshot()

	if stats.TotalDocs != 3 {
		t.Errorf("Expected 3 docs, got %d", stats.TotalDocs)
	}
	if stats.EmptyDocs != 1 {
		t.Errorf("Expected 1 empty doc, got %d", stats.EmptyDocs)
	}
	if stats.TotalLemmas != 5 {
		t.Errorf("Expected 5 lemmas, got %d", stats.TotalLemmas)
	}
	if stats.LemmaDF["market"] != 2 {
		t.Errorf("market should appear in 2 docs, got %d", stats.LemmaDF["market"])
	}
	if stats.LemmaCount["market"] != 3 {
		t.Errorf("market should occur 3 times, got %d", stats.LemmaCount["market"])
	}
	if stats.BigramCounts[Pair{"market", "rally"}] != 1 {
		t.Error("Expected bigram market→rally")
	}
	if stats.BigramCounts[Pair{"rally", "market"}] != 1 {
		t.Error("Bigrams should be ordered")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	a := NewAnalyzer()
	a.Process([]string{"one"})
	stats := a.Snapshot()

	a.Process([]string{"one"})
	if stats.LemmaDF["one"] != 1 {
		t.Error("Snapshot should not change after more processing")
	}
}

func TestTopLemmas(t *testing.T) {
	a := NewAnalyzer()
	a.ProcessAll([][]string{
		{"b", "a"},
		{"a", "c"},
		{"a", "b"},
		{"d"},
	})

	top := a.Snapshot().TopLemmas(3)
	if len(top) != 3 {
		t.Fatalf("Expected 3 lemmas, got %d", len(top))
	}
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if top[i].Lemma != w {
			t.Errorf("Position %d: got %q, want %q", i, top[i].Lemma, w)
		}
	}
	if top[0].DF != 3 {
		t.Errorf("Expected DF 3 for a, got %d", top[0].DF)
	}
}

func TestTopBigrams(t *testing.T) {
	a := NewAnalyzer()
	a.ProcessAll([][]string{
		{"new", "york", "city"},
		{"new", "york"},
	})

	top := a.Snapshot().TopBigrams(1)
	if len(top) != 1 || top[0].A != "new" || top[0].B != "york" || top[0].Count != 2 {
		t.Errorf("Expected new york ×2, got %+v", top)
	}
}

func TestAvgLemmas(t *testing.T) {
	if avg := NewAnalyzer().Snapshot().AvgLemmas(); avg != 0 {
		t.Errorf("Empty analyzer should average 0, got %f", avg)
	}

	a := NewAnalyzer()
	a.ProcessAll([][]string{{"a", "b"}, {"c", "d", "e", "f"}})
	if avg := a.Snapshot().AvgLemmas(); avg != 3 {
		t.Errorf("Expected average 3, got %f", avg)
	}
}

func TestStopwordStatsFeedSuggestions(t *testing.T) {
	a := NewAnalyzer()
	a.ProcessAll([][]string{
		{"say", "market"},
		{"say", "rain"},
		{"say", "vote"},
		{"market"},
	})

	stats := a.Snapshot().StopwordStats()
	if len(stats) != 4 {
		t.Fatalf("Expected 4 lemma stats, got %d", len(stats))
	}
	if stats[0].Token != "say" || stats[0].DFPercent != 75 {
		t.Errorf("Expected say at 75%%, got %+v", stats[0])
	}

	candidates := stoplist.NewSet(nil).SuggestCandidates(stats, stoplist.DefaultThresholds())
	if len(candidates) != 1 || candidates[0].Token != "say" {
		t.Errorf("Expected only say as candidate, got %+v", candidates)
	}
}
