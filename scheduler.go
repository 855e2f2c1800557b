package spright

import (
	"runtime"
	"sync"
)

// maxWorkers returns the worker count to use for n items, clamped to
// limit when limit is positive, mirroring the teacher's own "clamp to
// runtime.NumCPU (or img.Workers)" rule for its directory-walking
// worker pool. limit <= 0 means "no caller preference": fall back to
// runtime.NumCPU.
func maxWorkers(n, limit int) int {
	cap := runtime.NumCPU()
	if limit > 0 && limit < cap {
		cap = limit
	}
	if n < cap {
		cap = n
	}
	return cap
}

// ForEachParallel invokes fn exactly once for every element of items,
// concurrently (bounded to the number of available CPUs), and returns
// the first non-nil error once every invocation has finished.
// Invocation order is unspecified.
func ForEachParallel[T any](items []T, fn func(*T) error) error {
	return ForEachParallelLimit(items, 0, fn)
}

// ForEachParallelLimit is ForEachParallel with an explicit concurrency
// cap: limit <= 0 falls back to the runtime.NumCPU default.
func ForEachParallelLimit[T any](items []T, limit int, fn func(*T) error) error {
	return forEachParallelN(len(items), limit, func(i int) error {
		return fn(&items[i])
	})
}

// ForEachParallelN invokes fn(i) exactly once for every i in [0, n),
// bounding concurrency to the number of available CPUs, and returns the
// first non-nil error once every invocation has finished.
func ForEachParallelN(n int, fn func(i int) error) error {
	return forEachParallelN(n, 0, fn)
}

func forEachParallelN(n, limit int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}

	workers := maxWorkers(n, limit)

	indices := make(chan int)
	errs := make(chan error, n)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				errs <- fn(i)
			}
		}()
	}

	go func() {
		defer close(indices)
		for i := 0; i < n; i++ {
			indices <- i
		}
	}()

	wg.Wait()
	close(errs)

	var first error
	for err := range errs {
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}
