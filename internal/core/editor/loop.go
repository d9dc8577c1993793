package editor

import (
	"context"
	"sync"
)

// Poster hands work to the single event loop that owns a Controller. Every
// mutation, timer callback and load completion goes through it.
type Poster interface {
	Post(fn func())
}

// PosterFunc adapts a function to the Poster interface.
type PosterFunc func(fn func())

// Post implements Poster.
func (f PosterFunc) Post(fn func()) {
	f(fn)
}

// Loop is a goroutine-backed event loop for running a Controller outside of
// a UI framework. Posted functions run one at a time in FIFO order.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates a loop with the given queue capacity.
func NewLoop(size int) *Loop {
	if size <= 0 {
		size = 64
	}
	return &Loop{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Run processes posted functions until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// Post implements Poster. Posting after the loop stopped is a no-op.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
	case l.queue <- fn:
	}
}

// Do posts fn and waits for it to finish. It returns ctx.Err() if the
// context ends first, or context.Canceled if the loop has stopped.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return context.Canceled
	case l.queue <- wrapped:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		// The loop may have run fn just before stopping.
		select {
		case <-finished:
			return nil
		default:
			return context.Canceled
		}
	case <-finished:
		return nil
	}
}
