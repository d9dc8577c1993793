package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/rxmark/internal/core/report"
)

// postedMsg carries work posted by the controller (load completions and
// gesture timers) back onto the bubbletea update loop.
type postedMsg struct {
	fn func()
}

// reportChangedMsg is sent when the report file changes on disk.
type reportChangedMsg report.Change

// queue implements editor.Poster. Posted functions are delivered one at a
// time by waitForPosted and run inside Update.
type queue struct {
	ch   chan func()
	done chan struct{}
}

func newQueue() *queue {
	return &queue{
		ch:   make(chan func(), 64),
		done: make(chan struct{}),
	}
}

// Post implements editor.Poster. Posting after close is a no-op.
func (q *queue) Post(fn func()) {
	select {
	case <-q.done:
	case q.ch <- fn:
	}
}

func (q *queue) close() {
	select {
	case <-q.done:
	default:
		close(q.done)
	}
}

func waitForPosted(q *queue) tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-q.ch:
			return postedMsg{fn: fn}
		case <-q.done:
			return nil
		}
	}
}

func waitForChange(w *report.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-w.Changes()
		if !ok {
			return nil
		}
		return reportChangedMsg(c)
	}
}
