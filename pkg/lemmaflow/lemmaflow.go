package lemmaflow

import (
	"context"
	"crypto/rand"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"

	"github.com/cognicore/lemmaflow/internal/logger"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/annotate"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/ingest"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/internalerr"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/parallel"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/store"
)

// Defaults applied by New when an option is left at zero.
const (
	DefaultChunkSize = 500
	DefaultBatchSize = 50
)

// Lemmaflow runs the chunked annotation pipeline over a document set.
type Lemmaflow struct {
	annotator *annotate.Annotator
	cleaner   *ingest.Cleaner
	store     store.Store
	log       logger.Logger

	chunkSize int
	batchSize int
	workers   int

	entropyMu sync.Mutex
	entropy   *ulid.MonotonicEntropy
}

// Options configures a Lemmaflow instance
type Options struct {
	Annotator *annotate.Annotator
	Cleaner   *ingest.Cleaner
	Store     store.Store // optional; runs are persisted when set
	Logger    logger.Logger

	ChunkSize int
	BatchSize int
	Workers   int
}

// New creates a Lemmaflow instance with the given dependencies
func New(opts Options) (*Lemmaflow, error) {
	if opts.ChunkSize < 0 || opts.BatchSize < 0 || opts.Workers < 0 {
		return nil, fmt.Errorf("%w: chunk size, batch size and workers must not be negative", internalerr.ErrInvalidConfig)
	}
	if opts.Annotator == nil {
		opts.Annotator = annotate.New(nil, nil)
	}
	if opts.Cleaner == nil {
		opts.Cleaner = ingest.NewCleaner(ingest.CleanerOptions{})
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewLogger(logger.TestConfig())
	}
	if opts.ChunkSize == 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Workers == 0 {
		opts.Workers = runtime.NumCPU()
	}

	return &Lemmaflow{
		annotator: opts.Annotator,
		cleaner:   opts.Cleaner,
		store:     opts.Store,
		log:       opts.Logger,
		chunkSize: opts.ChunkSize,
		batchSize: opts.BatchSize,
		workers:   opts.Workers,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Close releases the store, if any.
func (l *Lemmaflow) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}

// Row is one input document together with its cleaned text and lemmas.
type Row struct {
	Document ingest.Document
	Cleaned  string
	Lemmas   []string
}

// Table is the annotated document set, in input order.
type Table struct {
	RunID string
	Rows  []Row
}

// Lemmas returns the lemma column.
func (t *Table) Lemmas() [][]string {
	out := make([][]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Rows[i].Lemmas
	}
	return out
}

// Process annotates texts: chunk, dispatch each chunk to a worker running
// the annotator's batched pipe, flatten. Result i belongs to texts[i].
func (l *Lemmaflow) Process(ctx context.Context, texts []string) ([][]string, error) {
	chunks, err := parallel.Chunk(texts, l.chunkSize)
	if err != nil {
		return nil, err
	}

	total := parallel.ChunkCount(len(texts), l.chunkSize)
	l.log.Debug("dispatching chunks", "docs", len(texts), "chunks", total, "workers", l.workers, "batch", l.batchSize)

	results, err := parallel.Dispatch(ctx, chunks, l.workers,
		func(ctx context.Context, chunk []string) ([][]string, error) {
			return l.annotator.Pipe(ctx, chunk, l.batchSize)
		},
		parallel.DispatchOptions{
			Total: total,
			OnChunkDone: func(done, total int) {
				if done == total || done%10 == 0 {
					l.log.Info("annotated chunks", "done", done, "total", total)
				}
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}

	lemmas := parallel.Flatten(results)
	if len(lemmas) != len(texts) {
		return nil, fmt.Errorf("%w: got %d results for %d documents", internalerr.ErrInvalidInput, len(lemmas), len(texts))
	}
	return lemmas, nil
}

// Run cleans and annotates docs, assigns a run ID, and persists the result
// when a store is configured.
func (l *Lemmaflow) Run(ctx context.Context, docs []ingest.Document, inputPath string) (*Table, error) {
	started := time.Now()
	runID := l.newRunID()
	log := l.log.With("run", runID)

	log.Info("cleaning documents", "docs", humanize.Comma(int64(len(docs))))
	cleaned := l.cleaner.CleanAll(docs)

	lemmas, err := l.Process(ctx, cleaned)
	if err != nil {
		return nil, err
	}

	table := &Table{RunID: runID, Rows: make([]Row, len(docs))}
	for i := range docs {
		table.Rows[i] = Row{
			Document: docs[i],
			Cleaned:  cleaned[i],
			Lemmas:   lemmas[i],
		}
	}

	elapsed := time.Since(started)
	log.Info("annotation complete", "docs", humanize.Comma(int64(len(docs))), "elapsed", elapsed.Round(time.Millisecond))

	if l.store != nil {
		if err := l.persist(ctx, table, store.Run{
			ID:        runID,
			StartedAt: started,
			Duration:  elapsed,
			InputPath: inputPath,
			Docs:      len(docs),
			ChunkSize: l.chunkSize,
			BatchSize: l.batchSize,
			Workers:   l.workers,
		}); err != nil {
			return nil, err
		}
		log.Info("run stored")
	}

	return table, nil
}

func (l *Lemmaflow) persist(ctx context.Context, table *Table, run store.Run) error {
	rows := make([]store.Row, len(table.Rows))
	for i, r := range table.Rows {
		rows[i] = store.Row{
			Index:    i,
			Date:     r.Document.Date,
			Headline: r.Document.Headline,
			Lemmas:   r.Lemmas,
		}
	}
	if err := l.store.SaveRun(ctx, run, rows); err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

func (l *Lemmaflow) newRunID() string {
	l.entropyMu.Lock()
	defer l.entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), l.entropy).String()
}
