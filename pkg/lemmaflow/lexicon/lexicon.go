package lexicon

import (
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/annotate"
)

// Lexicon stores corpus-specific lemma overrides: word forms that should
// map to a chosen canonical lemma regardless of what the dictionary
// lemmatizer says (e.g. "data" → "data" instead of "datum", or "kids"
// folded into "child").
//
// A Lexicon is built once and then only read.
type Lexicon struct {
	// canonical -> all forms (including canonical itself)
	// Example: "datum" -> ["datum", "data"]
	forms map[string][]string

	// form -> canonical
	reverseIndex map[string]string
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		forms:        make(map[string][]string),
		reverseIndex: make(map[string]string),
	}
}

// LoadFromYAML loads lemma overrides from a YAML file.
//
// Expected format:
//
//	lemmas:
//	  - lemma: data
//	    forms: [datum, datas]
//	  - lemma: media
//	    forms: [medium]
func LoadFromYAML(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadYAML(f)
}

// ReadYAML parses lemma overrides from r.
func ReadYAML(r io.Reader) (*Lexicon, error) {
	var config struct {
		Lemmas []struct {
			Lemma string   `yaml:"lemma"`
			Forms []string `yaml:"forms"`
		} `yaml:"lemmas"`
	}

	if err := yaml.NewDecoder(r).Decode(&config); err != nil && err != io.EOF {
		return nil, err
	}

	lex := New()
	for _, entry := range config.Lemmas {
		if strings.TrimSpace(entry.Lemma) == "" {
			continue
		}
		lex.AddGroup(entry.Lemma, entry.Forms)
	}
	return lex, nil
}

// AddGroup registers forms under a canonical lemma. The lemma always maps
// to itself. Re-adding a lemma replaces its previous forms.
func (l *Lexicon) AddGroup(lemma string, forms []string) {
	lemma = strings.ToLower(strings.TrimSpace(lemma))

	// Clean up old reverse index entries if this lemma already exists
	if old, exists := l.forms[lemma]; exists {
		for _, f := range old {
			delete(l.reverseIndex, f)
		}
	}

	normalized := []string{lemma}
	seen := map[string]bool{lemma: true}
	for _, f := range forms {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		normalized = append(normalized, f)
		seen[f] = true
	}

	l.forms[lemma] = normalized
	for _, f := range normalized {
		l.reverseIndex[f] = lemma
	}
}

// Lookup returns the override lemma for word, if one exists.
func (l *Lexicon) Lookup(word string) (string, bool) {
	lemma, ok := l.reverseIndex[strings.ToLower(word)]
	return lemma, ok
}

// Forms returns all registered forms of the group containing word.
// Unknown words return a slice holding only the word itself.
func (l *Lexicon) Forms(word string) []string {
	word = strings.ToLower(word)
	if lemma, ok := l.reverseIndex[word]; ok {
		return l.forms[lemma]
	}
	return []string{word}
}

// Lemmas returns the registered canonical lemmas in sorted order.
func (l *Lexicon) Lemmas() []string {
	out := make([]string, 0, len(l.forms))
	for lemma := range l.forms {
		out = append(out, lemma)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of override groups.
func (l *Lexicon) Len() int {
	return len(l.forms)
}

// Wrap returns a lemmatizer that consults the overrides first and falls
// back to base for everything else.
func (l *Lexicon) Wrap(base annotate.Lemmatizer) annotate.Lemmatizer {
	if base == nil {
		base = annotate.Identity
	}
	return annotate.LemmatizerFunc(func(word string) string {
		if lemma, ok := l.reverseIndex[word]; ok {
			return lemma
		}
		return base.Lemma(word)
	})
}
