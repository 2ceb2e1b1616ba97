package stoplist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Set is a read-only stopword set. All words are stored lowercase.
// It is never mutated after construction and may be shared across goroutines.
type Set struct {
	stops map[string]struct{}
}

// NewSet creates a stopword set from the given words
func NewSet(words []string) *Set {
	stops := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		stops[w] = struct{}{}
	}
	return &Set{stops: stops}
}

// Load reads a stopword file. Files ending in .yaml or .yml use the
// `terms:` list format; anything else is one word per line.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAML(f)
	default:
		return ReadLines(f)
	}
}

// ReadLines parses newline-delimited stopwords. Blank lines and lines
// starting with # are ignored.
func ReadLines(r io.Reader) (*Set, error) {
	var words []string
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		w := strings.TrimSpace(scan.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		words = append(words, w)
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("scan stopwords: %w", err)
	}
	return NewSet(words), nil
}

// ReadYAML parses a stoplist in `terms: [...]` form.
func ReadYAML(r io.Reader) (*Set, error) {
	var sl struct {
		Terms []string `yaml:"terms"`
	}
	if err := yaml.NewDecoder(r).Decode(&sl); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse stoplist yaml: %w", err)
	}
	return NewSet(sl.Terms), nil
}

// IsStop checks if a token is a stopword, ignoring case
func (s *Set) IsStop(token string) bool {
	if _, ok := s.stops[token]; ok {
		return true
	}
	_, ok := s.stops[strings.ToLower(token)]
	return ok
}

// Len returns the number of stopwords
func (s *Set) Len() int {
	return len(s.stops)
}

// All returns all stopwords in sorted order
func (s *Set) All() []string {
	result := make([]string, 0, len(s.stops))
	for w := range s.stops {
		result = append(result, w)
	}
	sort.Strings(result)
	return result
}

// With returns a new set holding the union of s and words.
func (s *Set) With(words ...string) *Set {
	merged := make([]string, 0, len(s.stops)+len(words))
	for w := range s.stops {
		merged = append(merged, w)
	}
	merged = append(merged, words...)
	return NewSet(merged)
}

// WriteYAML writes the set in `terms:` form.
func (s *Set) WriteYAML(w io.Writer) error {
	data := struct {
		Terms []string `yaml:"terms"`
	}{Terms: s.All()}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(data)
}
