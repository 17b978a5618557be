package worker

import (
	"context"
	"sync"
)

// Job is one unit of batch work
type Job interface {
	Run(ctx context.Context) Result
}

// Result is the outcome of a job
type Result interface {
	Err() error
}

// Pool runs jobs over a fixed set of workers. Submit everything, then
// Drain once; results arrive in completion order. Any number of jobs may
// be queued before draining.
type Pool struct {
	workers int
	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu      sync.Mutex
	results []Result
}

// NewPool creates a pool with the given worker count
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
}

func (p *Pool) work() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			res := job.Run(p.ctx)
			p.mu.Lock()
			p.results = append(p.results, res)
			p.mu.Unlock()
		}
	}
}

// Submit queues a job. Submissions after cancellation are dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Drain closes the queue, waits for the workers and returns every result
func (p *Pool) Drain() []Result {
	close(p.jobs)
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results
}

// Stop cancels outstanding work immediately and waits for the workers
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
}
