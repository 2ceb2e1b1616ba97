package parallel

import (
	"fmt"
	"iter"
	"slices"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/internalerr"
)

// Chunk returns a lazy sequence of contiguous sub-slices of items, each at
// most size long. The final chunk is shorter when size does not divide
// len(items). Chunks alias items; callers must not mutate them.
func Chunk[T any](items []T, size int) (iter.Seq[[]T], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", internalerr.ErrInvalidInput, size)
	}
	return slices.Chunk(items, size), nil
}

// ChunkCount returns how many chunks Chunk yields for n items.
func ChunkCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
