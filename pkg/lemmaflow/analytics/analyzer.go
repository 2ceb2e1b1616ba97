package analytics

import (
	"sort"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/stoplist"
)

// Analyzer aggregates document-level lemma stats.
type Analyzer struct {
	totalDocs    int64
	totalLemmas  int64
	emptyDocs    int64
	lemmaDF      map[string]int64
	lemmaCount   map[string]int64
	bigramCounts map[Pair]int64 // adjacent lemma pairs only
}

// Pair is an ordered pair of adjacent lemmas.
type Pair struct {
	A, B string
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		lemmaDF:      make(map[string]int64),
		lemmaCount:   make(map[string]int64),
		bigramCounts: make(map[Pair]int64),
	}
}

// Process consumes one document's lemmas.
func (a *Analyzer) Process(lemmas []string) {
	a.totalDocs++
	if len(lemmas) == 0 {
		a.emptyDocs++
		return
	}

	seen := make(map[string]struct{}, len(lemmas))
	for _, lem := range lemmas {
		if lem == "" {
			continue
		}
		a.totalLemmas++
		a.lemmaCount[lem]++
		if _, ok := seen[lem]; ok {
			continue
		}
		seen[lem] = struct{}{}
		a.lemmaDF[lem]++
	}

	for i := 0; i < len(lemmas)-1; i++ {
		if lemmas[i] == "" || lemmas[i+1] == "" {
			continue
		}
		a.bigramCounts[Pair{A: lemmas[i], B: lemmas[i+1]}]++
	}
}

// ProcessAll consumes a batch of documents in order.
func (a *Analyzer) ProcessAll(docs [][]string) {
	for _, lemmas := range docs {
		a.Process(lemmas)
	}
}

// Stats exposes the aggregated counts.
type Stats struct {
	TotalDocs    int64
	TotalLemmas  int64
	EmptyDocs    int64
	LemmaDF      map[string]int64
	LemmaCount   map[string]int64
	BigramCounts map[Pair]int64
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Analyzer) Snapshot() Stats {
	copyDF := make(map[string]int64, len(a.lemmaDF))
	for lem, n := range a.lemmaDF {
		copyDF[lem] = n
	}
	copyCount := make(map[string]int64, len(a.lemmaCount))
	for lem, n := range a.lemmaCount {
		copyCount[lem] = n
	}
	copyBigrams := make(map[Pair]int64, len(a.bigramCounts))
	for p, n := range a.bigramCounts {
		copyBigrams[p] = n
	}
	return Stats{
		TotalDocs:    a.totalDocs,
		TotalLemmas:  a.totalLemmas,
		EmptyDocs:    a.emptyDocs,
		LemmaDF:      copyDF,
		LemmaCount:   copyCount,
		BigramCounts: copyBigrams,
	}
}

// LemmaStat is one lemma with its document frequency and total count.
type LemmaStat struct {
	Lemma string
	DF    int64
	Count int64
}

// TopLemmas returns the k lemmas with the highest document frequency,
// ties broken lexically. k <= 0 returns all lemmas.
func (s Stats) TopLemmas(k int) []LemmaStat {
	out := make([]LemmaStat, 0, len(s.LemmaDF))
	for lem, df := range s.LemmaDF {
		out = append(out, LemmaStat{Lemma: lem, DF: df, Count: s.LemmaCount[lem]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DF != out[j].DF {
			return out[i].DF > out[j].DF
		}
		return out[i].Lemma < out[j].Lemma
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// BigramStat is an adjacent lemma pair with its occurrence count.
type BigramStat struct {
	Pair
	Count int64
}

// TopBigrams returns the k most frequent adjacent pairs.
func (s Stats) TopBigrams(k int) []BigramStat {
	out := make([]BigramStat, 0, len(s.BigramCounts))
	for p, n := range s.BigramCounts {
		out = append(out, BigramStat{Pair: p, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// AvgLemmas returns the mean number of lemmas per document.
func (s Stats) AvgLemmas() float64 {
	if s.TotalDocs == 0 {
		return 0
	}
	return float64(s.TotalLemmas) / float64(s.TotalDocs)
}

// StopwordStats converts corpus stats into the format expected by
// stoplist.SuggestCandidates.
func (s Stats) StopwordStats() []stoplist.Stats {
	var out []stoplist.Stats
	if s.TotalDocs == 0 {
		return out
	}
	for _, ls := range s.TopLemmas(0) {
		out = append(out, stoplist.Stats{
			Token:     ls.Lemma,
			DF:        ls.DF,
			DFPercent: 100 * float64(ls.DF) / float64(s.TotalDocs),
		})
	}
	return out
}
