package concurrency

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"webpconv/internal/common"
)

// TaskFunc processes the task at index. It must not panic; failures are
// recorded by the task itself.
type TaskFunc func(index int)

// WorkerPool runs independent tasks on a bounded ants pool and waits for
// all of them.
type WorkerPool struct {
	maxWorkers int
}

// NewWorkerPool creates a pool limited to maxWorkers goroutines. A value of
// zero or less picks an optimal count for the machine.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = OptimalWorkerCount()
	}
	return &WorkerPool{maxWorkers: maxWorkers}
}

// MaxWorkers returns the configured concurrency limit.
func (wp *WorkerPool) MaxWorkers() int {
	return wp.maxWorkers
}

// Run executes task for every index in [0, total) and returns once every
// task has finished. Indices that could not be scheduled are reported in
// the returned slice so the caller can resolve them itself.
func (wp *WorkerPool) Run(total int, task TaskFunc) ([]int, error) {
	if total == 0 {
		return nil, nil
	}

	size := wp.maxWorkers
	if size > total {
		size = total
	}

	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var unscheduled []int

	for i := 0; i < total; i++ {
		wg.Add(1)

		// Capture variables for goroutine
		index := i

		if err := pool.Submit(func() {
			defer wg.Done()
			task(index)
		}); err != nil {
			wg.Done() // Decrement since Submit failed
			unscheduled = append(unscheduled, index)
		}
	}

	wg.Wait()
	return unscheduled, nil
}

// OptimalWorkerCount uses the available CPU cores, capped at
// common.MaxConcurrencyLimit.
func OptimalWorkerCount() int {
	maxConcurrency := runtime.NumCPU()
	if maxConcurrency > common.MaxConcurrencyLimit {
		maxConcurrency = common.MaxConcurrencyLimit
	}
	return maxConcurrency
}
