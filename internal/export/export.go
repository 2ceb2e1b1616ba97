package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/ingest"
)

// record is the JSONL shape of one output row.
type record struct {
	Date     string   `json:"date"`
	Headline string   `json:"headline"`
	Lemmas   []string `json:"lemmas"`
}

// WriteJSONL writes one JSON object per row.
func WriteJSONL(w io.Writer, table *lemmaflow.Table) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, row := range table.Rows {
		lemmas := row.Lemmas
		if lemmas == nil {
			lemmas = []string{}
		}
		rec := record{
			Date:     row.Document.Date.Format(ingest.DateLayout),
			Headline: row.Document.Headline,
			Lemmas:   lemmas,
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteTSV writes date, headline and space-joined lemmas per row.
func WriteTSV(w io.Writer, table *lemmaflow.Table) error {
	bw := bufio.NewWriter(w)
	for _, row := range table.Rows {
		headline := strings.NewReplacer("\t", " ", "\n", " ").Replace(row.Document.Headline)
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n",
			row.Document.Date.Format(ingest.DateLayout),
			headline,
			strings.Join(row.Lemmas, " "),
		); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile picks the format from the file extension: .tsv/.tab for TSV,
// everything else JSONL.
func WriteFile(path string, table *lemmaflow.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		err = WriteTSV(f, table)
	default:
		err = WriteJSONL(f, table)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
