package parallel

// Flatten concatenates nested in order. Elements are not copied.
func Flatten[T any](nested [][]T) []T {
	total := 0
	for _, part := range nested {
		total += len(part)
	}

	out := make([]T, 0, total)
	for _, part := range nested {
		out = append(out, part...)
	}
	return out
}
