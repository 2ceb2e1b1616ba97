package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/internalerr"
)

// tsvColumns is the fixed positional layout: date, headline, content.
const tsvColumns = 3

// LoadTSV reads documents from a headerless tab-separated file.
// A limit of 0 reads every row.
func LoadTSV(path string, limit int) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}
	defer f.Close()

	docs, err := ReadTSV(f, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// maxLineBytes bounds a single input row.
const maxLineBytes = 16 << 20

// ReadTSV parses documents from r. Each line is one row split on tabs;
// quotes are ordinary characters. Blank lines are skipped and any
// malformed row aborts the read.
func ReadTSV(r io.Reader, limit int) ([]Document, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: negative row limit %d", internalerr.ErrInvalidInput, limit)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var docs []Document
	line := 0
	for (limit == 0 || len(docs) < limit) && scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		doc, err := parseRecord(strings.Split(text, "\t"), line)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: after line %d: %v", internalerr.ErrInvalidInput, line, err)
	}

	return docs, nil
}

func parseRecord(record []string, line int) (Document, error) {
	if len(record) != tsvColumns {
		return Document{}, fmt.Errorf("%w: line %d: expected %d columns, got %d",
			internalerr.ErrInvalidInput, line, tsvColumns, len(record))
	}

	date, err := time.Parse(DateLayout, strings.TrimSpace(record[0]))
	if err != nil {
		return Document{}, fmt.Errorf("%w: line %d: bad date %q", internalerr.ErrInvalidInput, line, record[0])
	}

	doc := Document{
		Date:     date,
		Headline: record[1],
		Content:  record[2],
		Line:     line,
	}
	if err := doc.Validate(); err != nil {
		return Document{}, fmt.Errorf("%w: line %d: %v", internalerr.ErrInvalidInput, line, err)
	}
	return doc, nil
}
