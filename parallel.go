package forge

import "sync"

// parallelEach runs fn over every element of items, splitting the slice
// into workers contiguous chunks and running each chunk on its own
// goroutine. Adapted from the teacher's pipeline.go task() helper,
// generalized with a type parameter so callers pass a per-item function
// directly instead of a (start, end int) range — Integrator.Step and
// PositionUpdater's phases already iterate per-body, so a range-based
// callback would just re-loop inside every call site.
func parallelEach[T any](workers int, items []T, fn func(T)) {
	if workers < 1 {
		workers = 1
	}
	n := len(items)
	if n == 0 {
		return
	}
	if workers > n {
		workers = n
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min((w+1)*chunkSize, n)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for _, item := range items[start:end] {
				fn(item)
			}
		}(start, end)
	}
	wg.Wait()
}

// chunk splits items into at most n contiguous, non-empty slices of
// roughly equal size, for handing one slice per worker to parallelEach.
func chunk[T any](items []T, n int) [][]T {
	if n < 1 {
		n = 1
	}
	total := len(items)
	if total == 0 {
		return nil
	}
	if n > total {
		n = total
	}

	size := (total + n - 1) / n
	groups := make([][]T, 0, n)
	for start := 0; start < total; start += size {
		end := min(start+size, total)
		groups = append(groups, items[start:end])
	}
	return groups
}
