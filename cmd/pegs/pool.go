package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// maxWorkers bounds --workers. Linting is CPU-bound, so more workers than
// cores only adds scheduling overhead.
const maxWorkers = 64

// ErrInvalidWorkerCount is returned for a --workers value out of range.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// resolvePoolSize determines the worker count.
// Priority: explicit flag > GOMAXPROCS (adjusted by automaxprocs for containers).
func resolvePoolSize(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	return max(1, runtime.GOMAXPROCS(0))
}

// runPool calls work for every index in [0, n) on up to size goroutines and
// waits for all of them. Indexes left when ctx is canceled are passed to
// canceled instead.
func runPool(ctx context.Context, n, size int, work func(i int), canceled func(i int)) {
	if n == 0 {
		return
	}
	size = min(size, n)

	var wg sync.WaitGroup
	jobs := make(chan int, n)

	for w := 0; w < size; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					canceled(idx)
					continue
				}
				work(idx)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
}
