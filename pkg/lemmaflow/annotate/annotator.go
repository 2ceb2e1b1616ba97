package annotate

import (
	"context"
	"strings"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/stoplist"
)

// Annotator turns cleaned text into lemma lists: tokenize, drop
// non-alphabetic tokens and stopwords, lemmatize what remains.
//
// An Annotator is immutable once built, so one instance can serve every
// worker of a run.
type Annotator struct {
	stops      *stoplist.Set
	lemmatizer Lemmatizer
}

// New creates an annotator. A nil stopword set filters nothing and a nil
// lemmatizer keeps words as they are.
func New(stops *stoplist.Set, lemmatizer Lemmatizer) *Annotator {
	if stops == nil {
		stops = stoplist.NewSet(nil)
	}
	if lemmatizer == nil {
		lemmatizer = Identity
	}
	return &Annotator{stops: stops, lemmatizer: lemmatizer}
}

// Stopwords returns the stopword set used for filtering.
func (a *Annotator) Stopwords() *stoplist.Set {
	return a.stops
}

// Annotate returns the surviving lemmas of text, in order.
func (a *Annotator) Annotate(text string) []string {
	return a.annotate(text, nil)
}

// Pipe annotates texts in micro-batches of batchSize. Lemma lookups are
// memoized within a batch only, so results never depend on batch
// boundaries. A batchSize of 0 or less processes texts as a single batch.
func (a *Annotator) Pipe(ctx context.Context, texts []string, batchSize int) ([][]string, error) {
	if batchSize <= 0 || batchSize > len(texts) {
		batchSize = len(texts)
	}

	out := make([][]string, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+batchSize, len(texts))
		memo := make(map[string]string)
		for i := start; i < end; i++ {
			out[i] = a.annotate(texts[i], memo)
		}
	}
	return out, nil
}

func (a *Annotator) annotate(text string, memo map[string]string) []string {
	lemmas := []string{}
	for _, tok := range Tokenize(text) {
		if !tok.Alpha {
			continue
		}

		word := strings.ToLower(tok.Text)
		if a.stops.IsStop(word) {
			continue
		}

		lemma := a.lemma(word, memo)
		if lemma == "" {
			continue
		}
		lemmas = append(lemmas, lemma)
	}
	return lemmas
}

func (a *Annotator) lemma(word string, memo map[string]string) string {
	if memo == nil {
		return a.lemmatizer.Lemma(word)
	}
	if lemma, ok := memo[word]; ok {
		return lemma
	}
	lemma := a.lemmatizer.Lemma(word)
	memo[word] = lemma
	return lemma
}
