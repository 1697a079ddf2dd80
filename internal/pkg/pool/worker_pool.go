package pool

import (
	"context"
	"sync"
)

type Task func(ctx context.Context)

// WorkerPool runs submitted tasks on a fixed number of workers. Tasks are
// expected to absorb their own errors; the pool only bounds concurrency.
// Cancelling ctx drains remaining queued tasks without running them.
type WorkerPool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
}

func New(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

func (p *WorkerPool) Start(ctx context.Context) {
	if p == nil {
		return
	}
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for t := range p.tasks {
				if t == nil {
					continue
				}
				select {
				case <-ctx.Done():
					continue
				default:
				}
				t(ctx)
			}
		}()
	}
}

func (p *WorkerPool) Submit(t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- t
}

// Wait closes the queue and blocks until every worker has finished.
func (p *WorkerPool) Wait() {
	if p == nil {
		return
	}
	close(p.tasks)
	p.wg.Wait()
}
