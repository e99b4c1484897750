package parallel

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Result is the outcome of one submitted job.
type Result[T any] struct {
	Index    int
	ID       string
	Value    T
	Err      error
	Duration time.Duration
}

// WorkerPool runs jobs with bounded concurrency.
type WorkerPool[T any] struct {
	maxWorkers int
	semaphore  chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	next       int
	results    []Result[T]
	errors     []error
	failFast   bool
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a pool running at most maxWorkers jobs at a time.
// If maxWorkers is 0 every job gets its own goroutine right away.
// If failFast is true, the context is cancelled on the first error and jobs
// that have not started yet are skipped.
func NewWorkerPool[T any](ctx context.Context, maxWorkers int, failFast bool) *WorkerPool[T] {
	if maxWorkers < 0 {
		maxWorkers = 0
	}
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool[T]{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
		failFast:   failFast,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Submit schedules fn. It never blocks; the job waits for a free slot in its
// own goroutine. Jobs submitted after cancellation are dropped.
func (p *WorkerPool[T]) Submit(id string, fn func(ctx context.Context) (T, error)) {
	p.mu.Lock()
	index := p.next
	p.next++
	p.mu.Unlock()

	select {
	case <-p.ctx.Done():
		return
	default:
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if p.maxWorkers > 0 {
			select {
			case p.semaphore <- struct{}{}:
				defer func() { <-p.semaphore }()
			case <-p.ctx.Done():
				return
			}
		}

		// Skip if cancelled while waiting for a slot
		select {
		case <-p.ctx.Done():
			return
		default:
		}

		start := time.Now()
		value, err := fn(p.ctx)
		result := Result[T]{
			Index:    index,
			ID:       id,
			Value:    value,
			Err:      err,
			Duration: time.Since(start),
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		p.results = append(p.results, result)
		if err != nil {
			p.errors = append(p.errors, fmt.Errorf("%s: %w", id, err))
			if p.failFast {
				p.cancel()
			}
		}
	}()
}

// Wait blocks until every started job has finished and returns the results
// in submission order together with the wrapped errors.
func (p *WorkerPool[T]) Wait() ([]Result[T], []error) {
	p.wg.Wait()
	p.cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	results := make([]Result[T], len(p.results))
	copy(results, p.results)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	errs := make([]error, len(p.errors))
	copy(errs, p.errors)
	return results, errs
}

// Cancel stops jobs that have not started yet.
func (p *WorkerPool[T]) Cancel() {
	p.cancel()
}
