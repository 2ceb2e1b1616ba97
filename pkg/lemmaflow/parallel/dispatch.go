package parallel

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/internalerr"
)

// DispatchOptions tunes a Dispatch call.
type DispatchOptions struct {
	// Total is the expected chunk count, passed through to OnChunkDone.
	// Zero when unknown.
	Total int

	// OnChunkDone is called after each chunk finishes, with the number of
	// chunks completed so far and Total. Calls are serialized.
	OnChunkDone func(done, total int)
}

// Dispatch runs fn over every chunk using at most workers goroutines and
// returns the results indexed by chunk position, not completion order.
//
// Submitting a chunk blocks until a worker is free. The first error
// cancels the context passed to the remaining calls and is returned; no
// partial results are surfaced.
func Dispatch[In, Out any](ctx context.Context, chunks iter.Seq[In], workers int, fn func(context.Context, In) (Out, error), opts ...DispatchOptions) ([]Out, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", internalerr.ErrInvalidInput, workers)
	}
	var opt DispatchOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		mu      sync.Mutex
		results []Out
		done    int
	)

	idx := 0
	for chunk := range chunks {
		if gctx.Err() != nil {
			break
		}

		i := idx
		idx++

		mu.Lock()
		var zero Out
		results = append(results, zero)
		mu.Unlock()

		g.Go(func() error {
			out, err := fn(gctx, chunk)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}

			mu.Lock()
			defer mu.Unlock()
			results[i] = out
			done++
			if opt.OnChunkDone != nil {
				opt.OnChunkDone(done, opt.Total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
