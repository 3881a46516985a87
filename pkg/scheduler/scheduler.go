// Package scheduler runs work on a bounded pool of workers.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Work is a unit of work run by one scheduler worker.
type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future resolves once with the result of one Work.
type Future[T any] struct {
	c      chan Result[T]
	done   chan struct{}
	res    Result[T]
	cancel context.CancelFunc
}

func newFuture[T any](cancel context.CancelFunc) *Future[T] {
	return &Future[T]{
		c:      make(chan Result[T], 1),
		done:   make(chan struct{}),
		cancel: cancel,
	}
}

// C returns the channel receiving the result. It receives exactly one value.
func (f *Future[T]) C() <-chan Result[T] {
	return f.c
}

// Done is closed once the result is known.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result returns the result without blocking. ok is false while the work is
// queued or running. It does not consume the value sent on C.
func (f *Future[T]) Result() (r Result[T], ok bool) {
	select {
	case <-f.done:
		return f.res, true
	default:
		return r, false
	}
}

// Stop cancels the context of the work. Queued work is not run at all.
func (f *Future[T]) Stop() {
	f.cancel()
}

type job[T any] struct {
	fn     Work[T]
	f      *Future[T]
	ctx    context.Context
	cancel context.CancelFunc
}

func (j job[T]) resolve(v T, err error) {
	j.f.res = Result[T]{Data: v, Err: err}
	close(j.f.done)
	j.f.c <- j.f.res
	j.cancel()
}

func (j job[T]) abort(err error) {
	var zero T
	j.resolve(zero, err)
}

// Scheduler runs work on a fixed number of workers. Work is picked in FIFO order.
type Scheduler[T any] struct {
	mu         sync.Mutex
	cond       *sync.Cond
	queue      []job[T]
	closed     bool
	wg         sync.WaitGroup
	mainCtx    context.Context
	mainCancel context.CancelFunc
	logger     *zap.SugaredLogger
}

// NewScheduler starts nbWorkers workers. Work contexts derive from parent, so
// they carry its values and end with it.
func NewScheduler[T any](parent context.Context, nbWorkers int) *Scheduler[T] {
	if nbWorkers < 1 {
		nbWorkers = 1
	}

	ctx, cancel := context.WithCancel(parent)
	s := &Scheduler[T]{
		mainCtx:    ctx,
		mainCancel: cancel,
		logger:     zap.S().Named("scheduler"),
	}
	s.cond = sync.NewCond(&s.mu)

	s.wg.Add(nbWorkers)
	for range nbWorkers {
		go s.worker()
	}

	return s
}

// Submit queues w and returns its future. After Close the future resolves
// immediately with context.Canceled.
func (s *Scheduler[T]) Submit(w Work[T]) *Future[T] {
	ctx, cancel := context.WithCancel(s.mainCtx)
	f := newFuture[T](cancel)
	j := job[T]{
		fn:     w,
		f:      f,
		ctx:    ctx,
		cancel: cancel,
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		j.abort(context.Canceled)
		return f
	}
	s.queue = append(s.queue, j)
	s.mu.Unlock()
	s.cond.Signal()

	return f
}

// Pending returns the number of queued jobs no worker has picked yet.
func (s *Scheduler[T]) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Close cancels running work, resolves queued work with context.Canceled and
// waits for the workers to return. It is safe to call more than once.
func (s *Scheduler[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.wg.Wait()
		return
	}
	s.closed = true
	pending := s.queue
	s.queue = nil
	s.mu.Unlock()

	s.mainCancel()
	s.cond.Broadcast()

	for _, j := range pending {
		j.abort(context.Canceled)
	}

	s.wg.Wait()
}

func (s *Scheduler[T]) worker() {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			return
		}
		j := s.queue[0]
		s.queue[0] = job[T]{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.run(j)
	}
}

func (s *Scheduler[T]) run(j job[T]) {
	// stopped while queued
	if err := j.ctx.Err(); err != nil {
		j.abort(err)
		return
	}

	v, err := func() (v T, err error) {
		defer func() {
			if p := recover(); p != nil {
				s.logger.Errorw("worker panicked", "panic", p)
				err = fmt.Errorf("worker panicked: %v", p)
			}
		}()
		return j.fn(j.ctx)
	}()

	j.resolve(v, err)
}
