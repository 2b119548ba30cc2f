package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/gravctl/oerror"
	"go.uber.org/atomic"
)

// Pool runs functions on a fixed amount of goroutines. Close must not be called concurrently with
// Submit or Batch.
type Pool struct {
	queue  chan func()
	closed atomic.Bool
	wg     sync.WaitGroup
}

// New returns a pool of the amount of workers passed, or one worker per CPU if workers is not
// positive.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Pool{queue: make(chan func(), workers)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	defer sentry.Recover()

	for f := range p.queue {
		f()
	}
}

// Submit queues a function that may be CPU intensive. It returns false if the pool is closed.
func (p *Pool) Submit(f func()) bool {
	if p.closed.Load() {
		return false
	}
	p.queue <- f
	return true
}

// Batch runs every function passed on the pool and waits until all of them returned. A panic in
// one of the functions is reported to sentry and returned as error once the batch is done.
func (p *Pool) Batch(fns ...func()) error {
	if p.closed.Load() {
		return oerror.New("worker pool closed")
	}

	var (
		wg       sync.WaitGroup
		panicked atomic.Int32
	)
	wg.Add(len(fns))
	for _, f := range fns {
		p.queue <- func() {
			defer wg.Done()
			defer func() {
				if v := recover(); v != nil {
					panicked.Inc()
					sentry.CurrentHub().Recover(v)
				}
			}()
			f()
		}
	}
	wg.Wait()

	if n := panicked.Load(); n > 0 {
		return oerror.New("%d of %d tasks panicked", n, len(fns))
	}
	return nil
}

// Close stops the workers once every queued function ran.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	close(p.queue)
	p.wg.Wait()
}
