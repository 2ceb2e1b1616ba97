package annotate

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Lemmatizer maps a lowercase word to its canonical form.
// Implementations must be safe for concurrent use.
type Lemmatizer interface {
	Lemma(word string) string
}

// LemmatizerFunc adapts a plain function to the Lemmatizer interface.
type LemmatizerFunc func(word string) string

// Lemma implements Lemmatizer.
func (f LemmatizerFunc) Lemma(word string) string { return f(word) }

// Identity returns every word unchanged.
var Identity Lemmatizer = LemmatizerFunc(func(word string) string { return word })

// golemLemmatizer wraps the golem dictionary lemmatizer. The dictionary is
// only read after construction.
type golemLemmatizer struct {
	lem *golem.Lemmatizer
}

// NewEnglish loads the English golem dictionary.
func NewEnglish() (Lemmatizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return &golemLemmatizer{lem: lem}, nil
}

func (g *golemLemmatizer) Lemma(word string) string {
	lemma := strings.ToLower(g.lem.Lemma(word))
	if lemma == "" {
		return word
	}
	return lemma
}
