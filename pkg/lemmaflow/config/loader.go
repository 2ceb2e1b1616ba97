package config

import (
	"fmt"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/annotate"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/ingest"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/lexicon"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/stoplist"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	StopwordsPath string
	LexiconPath   string
	StripHTML     bool
	NoLemmatizer  bool

	// NewLemmatizer builds the base lemmatizer. Defaults to annotate.NewEnglish.
	NewLemmatizer func() (annotate.Lemmatizer, error)
}

// NewLoader returns a loader for the files named in cfg.
func NewLoader(cfg Config) *Loader {
	return &Loader{
		StopwordsPath: cfg.Stopwords,
		LexiconPath:   cfg.Lexicon,
		StripHTML:     cfg.StripHTML,
		NoLemmatizer:  cfg.NoLemmatizer,
	}
}

// Components holds all loaded configuration components
type Components struct {
	Stopwords *stoplist.Set
	Lexicon   *lexicon.Lexicon
	Cleaner   *ingest.Cleaner
	Annotator *annotate.Annotator
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{
		Cleaner: ingest.NewCleaner(ingest.CleanerOptions{StripHTML: l.StripHTML}),
	}

	// Load stopwords
	if l.StopwordsPath != "" {
		stops, err := stoplist.Load(l.StopwordsPath)
		if err != nil {
			return nil, fmt.Errorf("load stopwords: %w", err)
		}
		comp.Stopwords = stops
	} else {
		comp.Stopwords = stoplist.NewSet(nil)
	}

	// Base lemmatizer
	lem := annotate.Identity
	if !l.NoLemmatizer {
		newLem := l.NewLemmatizer
		if newLem == nil {
			newLem = annotate.NewEnglish
		}
		base, err := newLem()
		if err != nil {
			return nil, fmt.Errorf("load lemmatizer: %w", err)
		}
		lem = base
	}

	// Lemma overrides
	if l.LexiconPath != "" {
		lex, err := lexicon.LoadFromYAML(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = lex
		lem = lex.Wrap(lem)
	}

	comp.Annotator = annotate.New(comp.Stopwords, lem)
	return comp, nil
}
