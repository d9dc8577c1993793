// Package gesture turns a raw stream of clicks into toggle and edit-open
// decisions without relying on a native double-click event.
//
// A first click arms the disambiguator and schedules a deferred toggle. A
// second click on the same token inside the window cancels that toggle and
// yields an edit-open instead. Toggle decisions therefore always arrive
// exactly one window after the click.
package gesture

import (
	"time"
)

// DefaultWindow is the maximum interval between two clicks that still counts
// as a double click.
const DefaultWindow = 200 * time.Millisecond

// DecisionKind is the resolved meaning of a click sequence.
type DecisionKind int

const (
	Toggle DecisionKind = iota
	EditOpen
)

// String returns the string representation of the decision kind.
func (k DecisionKind) String() string {
	switch k {
	case Toggle:
		return "toggle"
	case EditOpen:
		return "edit-open"
	default:
		return "unknown"
	}
}

// Decision is emitted once per resolved click sequence.
type Decision struct {
	Kind  DecisionKind
	Index int
}

// Timer is a pending deferred action.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d unless the returned timer is stopped.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// State is the disambiguator state.
type State int

const (
	Idle State = iota
	Armed
)

// Disambiguator is the per-session click state machine. It is not safe for
// concurrent use: Click, Reset and the scheduled callbacks must all run on
// the same event loop, which is why the Scheduler given to New is expected
// to deliver callbacks onto that loop.
type Disambiguator struct {
	window time.Duration
	sched  Scheduler
	emit   func(Decision)

	state    State
	index    int
	armedAt  time.Time
	timer    Timer
	armedGen uint64 // generation of the current armed state; 0 when idle
	gen      uint64
}

// New creates a disambiguator. Decisions are passed to emit.
func New(window time.Duration, sched Scheduler, emit func(Decision)) *Disambiguator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Disambiguator{
		window: window,
		sched:  sched,
		emit:   emit,
	}
}

// Window returns the disambiguation window.
func (d *Disambiguator) Window() time.Duration {
	return d.window
}

// State returns the current state and, when armed, the armed index.
func (d *Disambiguator) State() (State, int) {
	if d.state == Armed {
		return Armed, d.index
	}
	return Idle, -1
}

// Click feeds one click on token index at time now.
func (d *Disambiguator) Click(index int, now time.Time) {
	if d.state == Armed && d.index == index && now.Sub(d.armedAt) < d.window {
		d.disarm()
		d.emit(Decision{Kind: EditOpen, Index: index})
		return
	}

	d.disarm()
	d.arm(index, now)
}

// Reset cancels any pending toggle and returns to Idle. No decision is
// emitted.
func (d *Disambiguator) Reset() {
	d.disarm()
}

func (d *Disambiguator) arm(index int, now time.Time) {
	d.gen++
	gen := d.gen

	d.state = Armed
	d.index = index
	d.armedAt = now
	d.armedGen = gen
	d.timer = d.sched.AfterFunc(d.window, func() {
		d.fire(gen)
	})
}

// fire resolves the armed state as a toggle. Callbacks from a superseded or
// cancelled arming carry a stale generation and do nothing, so a Stop that
// loses the race with the timer never produces a second decision.
func (d *Disambiguator) fire(gen uint64) {
	if d.state != Armed || d.armedGen != gen {
		return
	}
	index := d.index
	d.state = Idle
	d.armedGen = 0
	d.timer = nil
	d.emit(Decision{Kind: Toggle, Index: index})
}

func (d *Disambiguator) disarm() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.state = Idle
	d.index = -1
	d.armedGen = 0
	d.timer = nil
}
