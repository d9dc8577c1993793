package gesture

import "time"

// RealScheduler schedules callbacks with time.AfterFunc. Callbacks run on a
// separate goroutine; wrap it with Posted to move them onto an event loop.
type RealScheduler struct{}

// AfterFunc implements Scheduler.
func (RealScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// PostFunc hands fn to an event loop for execution.
type PostFunc func(fn func())

// Posted wraps a scheduler so that every callback is delivered through post
// instead of running on the timer's goroutine.
func Posted(s Scheduler, post PostFunc) Scheduler {
	return postedScheduler{inner: s, post: post}
}

type postedScheduler struct {
	inner Scheduler
	post  PostFunc
}

func (p postedScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return p.inner.AfterFunc(d, func() {
		p.post(fn)
	})
}
