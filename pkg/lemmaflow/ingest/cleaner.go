package ingest

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// wordPattern keeps alphanumeric/hyphen runs of 3 to 50 characters.
var wordPattern = regexp.MustCompile(`[A-Za-z0-9-]{3,50}`)

// CleanerOptions toggles the optional cleaning steps.
type CleanerOptions struct {
	StripHTML bool
}

// Cleaner turns raw article content into a normalized text blob.
// It holds no mutable state and is safe for concurrent use.
type Cleaner struct {
	stripHTML bool
}

// NewCleaner creates a cleaner with the given options
func NewCleaner(opts CleanerOptions) *Cleaner {
	return &Cleaner{stripHTML: opts.StripHTML}
}

// Clean extracts the word tokens of raw and joins them with single spaces.
func (c *Cleaner) Clean(raw string) string {
	if c.stripHTML && strings.ContainsRune(raw, '<') {
		raw = stripHTML(raw)
	}
	raw = norm.NFKC.String(raw)
	return strings.Join(wordPattern.FindAllString(raw, -1), " ")
}

// CleanAll cleans the content of every document, preserving order.
func (c *Cleaner) CleanAll(docs []Document) []string {
	out := make([]string, len(docs))
	for i := range docs {
		out[i] = c.Clean(docs[i].Content)
	}
	return out
}

// stripHTML returns the text nodes of s, separated by spaces so that
// adjacent block elements do not glue words together.
func stripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}
