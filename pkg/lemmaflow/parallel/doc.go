// Package parallel implements the chunk, dispatch and flatten steps of a
// single fan-out/fan-in batch transform.
//
// Chunk splits an ordered slice into contiguous pieces, Dispatch runs one
// function per piece on a bounded pool of goroutines and returns results
// in chunk order, and Flatten joins the per-chunk results back into one
// slice aligned with the original input.
package parallel
