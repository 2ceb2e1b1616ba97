package ingest

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the layout of the date column in input files.
const DateLayout = "2006-01-02"

// Document is one news article row after loading.
type Document struct {
	Date     time.Time
	Headline string
	Content  string
	Line     int // 1-based line in the source file, 0 if not loaded from a file
}

// Validate checks if the document has required fields
func (d *Document) Validate() error {
	if d.Date.IsZero() {
		return errors.New("document date is required")
	}

	if strings.ContainsAny(d.Headline, "\t\n") {
		return errors.New("document headline must not contain tabs or newlines")
	}

	return nil
}
