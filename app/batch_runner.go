package app

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"goquade/domain/quade"
)

// BatchRunner executes the test over many matrices concurrently. Each matrix
// is an independent pure computation, so results are deterministic regardless
// of scheduling; they are collected in input order. A weighted semaphore
// bounds how many computations run at once.
type BatchRunner struct {
	service *QuadeService
	sem     *semaphore.Weighted
}

// NewBatchRunner creates a batch runner allowing up to maxConcurrent
// computations in flight
func NewBatchRunner(service *QuadeService, maxConcurrent int64) *BatchRunner {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &BatchRunner{
		service: service,
		sem:     semaphore.NewWeighted(maxConcurrent),
	}
}

// BatchItem is one matrix to test
type BatchItem struct {
	Dataset string
	Matrix  quade.Matrix
}

// BatchResult pairs an item with its outcome. Failures are isolated: one bad
// matrix does not abort the rest of the batch.
type BatchResult struct {
	Dataset string
	Run     *quade.TestRun
	Err     error
}

// RunAll tests every item with the same alpha and post-hoc setting and
// returns one result per item, in input order.
func (b *BatchRunner) RunAll(ctx context.Context, alpha float64, postHoc bool, items []BatchItem) []BatchResult {
	results := make([]BatchResult, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		if err := b.sem.Acquire(ctx, 1); err != nil {
			results[i] = BatchResult{Dataset: item.Dataset, Err: err}
			continue
		}

		wg.Add(1)
		go func(idx int, it BatchItem) {
			defer wg.Done()
			defer b.sem.Release(1)

			run, err := b.service.Run(ctx, RunRequest{
				Matrix:  it.Matrix,
				Alpha:   alpha,
				PostHoc: postHoc,
				Dataset: it.Dataset,
			})
			results[idx] = BatchResult{Dataset: it.Dataset, Run: run, Err: err}
		}(i, item)
	}

	wg.Wait()
	return results
}
