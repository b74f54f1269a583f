package pipeline

import (
	"runtime"
	"sync"
)

// Pool is a fixed-size worker pool shared by every task submitted to it.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup
}

// NewPool starts a pool of workers workers strong; workers<=0 defaults to
// runtime.NumCPU().
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Pool{tasks: make(chan func())}
	p.wg.Add(workers)
	for range workers {
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for fn := range p.tasks {
		fn()
	}
}

// Enqueue schedules fn fire-and-forget.
func (p *Pool) Enqueue(fn func()) {
	p.tasks <- fn
}

// Close stops accepting new work and blocks until every worker has drained
// its current task and exited.
func (p *Pool) Close() {
	close(p.tasks)
	p.wg.Wait()
}

// Future is a result-returning handle to a task submitted via Submit.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Wait blocks until the task completes and returns its result.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.val, f.err
}

// Submit schedules fn on the pool and returns a Future for its result.
func Submit[T any](p *Pool, fn func() (T, error)) *Future[T] {
	fut := &Future[T]{done: make(chan struct{})}
	p.Enqueue(func() {
		fut.val, fut.err = fn()
		close(fut.done)
	})
	return fut
}

// TaskGroup tracks a batch of fire-and-forget tasks run on a shared Pool,
// capturing the first error any of them returns.
type TaskGroup struct {
	pool     *Pool
	wg       sync.WaitGroup
	mu       sync.Mutex
	firstErr error
}

// NewTaskGroup creates a TaskGroup that schedules its work on pool.
func NewTaskGroup(pool *Pool) *TaskGroup {
	return &TaskGroup{pool: pool}
}

// Go schedules fn, recording its error (if any) as a candidate for the
// first error Wait rethrows. All other captured errors are discarded.
func (g *TaskGroup) Go(fn func() error) {
	g.wg.Add(1)
	g.pool.Enqueue(func() {
		defer g.wg.Done()
		if err := fn(); err != nil {
			g.mu.Lock()
			if g.firstErr == nil {
				g.firstErr = err
			}
			g.mu.Unlock()
		}
	})
}

// Wait blocks until every scheduled task has completed and returns the
// first captured error, if any.
func (g *TaskGroup) Wait() error {
	g.wg.Wait()
	return g.firstErr
}
