package slate

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Executor runs tasks off the tick goroutine.
type Executor interface {
	Submit(task func())
}

// Pool is an Executor running at most size tasks at once. Tasks queued when
// the pool is closed are dropped.
type Pool struct {
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPool returns a pool running up to size concurrent tasks.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		sem:    semaphore.NewWeighted(int64(size)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Submit queues task. It never blocks the caller.
func (p *Pool) Submit(task func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.sem.Acquire(p.ctx, 1); err != nil {
			return
		}
		defer p.sem.Release(1)
		task()
	}()
}

// Close drops queued tasks and waits for running ones to return.
func (p *Pool) Close() {
	p.cancel()
	p.wg.Wait()
}

// DefaultPool runs suspended tile factories unless a tile is given its own
// executor.
var DefaultPool Executor = NewPool(runtime.NumCPU())
