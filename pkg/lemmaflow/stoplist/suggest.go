package stoplist

import "sort"

// Stats holds corpus statistics for one lemma
type Stats struct {
	Token     string
	DF        int64
	DFPercent float64
}

// Candidate represents a candidate stopword
type Candidate struct {
	Token     string
	DFPercent float64
	Score     float64 // confidence score
}

// Thresholds defines criteria for stopword identification
type Thresholds struct {
	DFPercent float64 // e.g., 60% - appears in 60% of documents
	MinDF     int64   // ignore lemmas seen in fewer documents than this
}

// DefaultThresholds returns sensible default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DFPercent: 60.0,
		MinDF:     2,
	}
}

// SuggestCandidates proposes lemmas that appear in too many documents to
// carry signal. Existing stopwords are never suggested. Results are sorted
// by score, highest first.
func (s *Set) SuggestCandidates(stats []Stats, thresholds Thresholds) []Candidate {
	if thresholds.DFPercent == 0 {
		thresholds.DFPercent = DefaultThresholds().DFPercent
	}

	var candidates []Candidate
	for _, st := range stats {
		if s.IsStop(st.Token) {
			continue // already a stopword
		}
		if st.DF < thresholds.MinDF {
			continue
		}
		if st.DFPercent <= thresholds.DFPercent {
			continue
		}
		candidates = append(candidates, Candidate{
			Token:     st.Token,
			DFPercent: st.DFPercent,
			Score:     st.DFPercent / 100.0,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Token < candidates[j].Token
	})
	return candidates
}
