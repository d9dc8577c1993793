// Package editor implements the edit-session controller: it loads a report
// into an annotation store, routes clicks through the gesture disambiguator
// and serializes the result on save.
//
// # Threading
//
// A Controller is owned by one event loop. All exported methods must be
// called from that loop, and the controller posts its own asynchronous work
// (the tokenizer load and deferred toggle timers) back onto it through the
// configured Poster. No locks are taken.
//
// # Lifecycle
//
//	Closed --Open--> Loading --(load done)--> Ready --Save/Cancel--> Closed
//
// Cancel is also accepted while Loading. Open on a non-closed controller
// discards the current session first.
package editor

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/rxmark/internal/core/annotate"
	"github.com/colonyops/rxmark/internal/core/gesture"
	"github.com/colonyops/rxmark/internal/core/markup"
)

// Errors returned when an operation is not valid in the current state.
var (
	ErrNotReady = errors.New("session is not ready")
	ErrClosed   = errors.New("no session is open")
)

// State is the controller lifecycle state.
type State int

const (
	StateClosed State = iota
	StateLoading
	StateReady
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Holder receives the serialized report on save.
type Holder interface {
	SetReport(markup string) error
}

// Options configures a Controller.
type Options struct {
	Palette   markup.Palette
	Window    time.Duration // double-click window; gesture.DefaultWindow when zero
	LoadDelay time.Duration // artificial delay before tokenizing
	Holder    Holder
	Poster    Poster
	Scheduler gesture.Scheduler // gesture.RealScheduler when nil
	Now       func() time.Time  // time.Now when nil
	Logger    zerolog.Logger
	OnEvent   func(Event) // called on the event loop after every change
}

// Controller drives one edit session at a time.
type Controller struct {
	opts  Options
	log   zerolog.Logger
	sched gesture.Scheduler // delivers callbacks onto the event loop

	state     State
	gen       uint64
	sessionID string
	store     *annotate.Store
	gesture   *gesture.Disambiguator
}

// New creates a closed controller.
func New(opts Options) *Controller {
	if opts.Scheduler == nil {
		opts.Scheduler = gesture.RealScheduler{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Window <= 0 {
		opts.Window = gesture.DefaultWindow
	}

	c := &Controller{
		opts: opts,
		log:  opts.Logger,
	}
	c.sched = gesture.Posted(opts.Scheduler, c.post)
	return c
}

func (c *Controller) post(fn func()) {
	c.opts.Poster.Post(fn)
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// SessionID returns the id of the current session, or "" when closed.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Palette returns the configured palette.
func (c *Controller) Palette() markup.Palette {
	return c.opts.Palette
}

// Tokens returns a copy of the session's tokens; nil unless Ready.
func (c *Controller) Tokens() []markup.Token {
	if c.store == nil {
		return nil
	}
	return c.store.Tokens()
}

// Cursor returns the token open for editing, if any.
func (c *Controller) Cursor() (int, bool) {
	if c.store == nil {
		return -1, false
	}
	return c.store.Cursor()
}

// Draft returns the pending text of the open token.
func (c *Controller) Draft() string {
	if c.store == nil {
		return ""
	}
	return c.store.Draft()
}

// Dirty reports whether the current session changed any token.
func (c *Controller) Dirty() bool {
	return c.store != nil && c.store.Dirty()
}

// Open starts a new session for the given report markup. Any current
// session is discarded, including its pending timer and in-flight load.
// Tokenizing happens off the event loop; the controller becomes Ready once
// the result has been posted back.
func (c *Controller) Open(report string) {
	if c.state != StateClosed {
		c.log.Debug().Str("session_id", c.sessionID).Msg("open replaces current session")
	}
	c.discard()

	c.gen++
	gen := c.gen
	c.sessionID = uuid.NewString()
	c.state = StateLoading
	c.log = c.opts.Logger.With().Str("session_id", c.sessionID).Logger()
	c.log.Info().Int("bytes", len(report)).Msg("session loading")

	palette := c.opts.Palette
	load := func() {
		tokens := markup.Tokenize(report, palette)
		c.post(func() { c.finishLoad(gen, tokens) })
	}

	if c.opts.LoadDelay > 0 {
		c.opts.Scheduler.AfterFunc(c.opts.LoadDelay, load)
	} else {
		go load()
	}

	c.notify(Event{Kind: EventLoading, Index: -1})
}

func (c *Controller) finishLoad(gen uint64, tokens []markup.Token) {
	if gen != c.gen || c.state != StateLoading {
		c.log.Debug().Uint64("gen", gen).Msg("dropping stale load")
		return
	}

	c.store = annotate.New(tokens, c.opts.Palette)
	c.gesture = gesture.New(c.opts.Window, c.sched, c.apply)
	c.state = StateReady
	c.log.Info().Int("tokens", len(tokens)).Msg("session ready")
	c.notify(Event{Kind: EventReady, Index: -1})
}

// apply executes a resolved gesture against the store.
func (c *Controller) apply(d gesture.Decision) {
	if c.state != StateReady {
		return
	}

	switch d.Kind {
	case gesture.Toggle:
		if err := c.store.ToggleHighlight(d.Index); err != nil {
			c.log.Error().Err(err).Int("index", d.Index).Msg("toggle rejected")
			return
		}
		c.log.Debug().Int("index", d.Index).Msg("highlight toggled")
		c.notify(Event{Kind: EventToggled, Index: d.Index})

	case gesture.EditOpen:
		if err := c.store.OpenEdit(d.Index); err != nil {
			c.log.Error().Err(err).Int("index", d.Index).Msg("edit-open rejected")
			return
		}
		c.log.Debug().Int("index", d.Index).Msg("edit opened")
		c.notify(Event{Kind: EventEditOpened, Index: d.Index})
	}
}

// OnClick feeds a click on token index into the disambiguator. Only word
// tokens are clickable.
func (c *Controller) OnClick(index int) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	tok, err := c.store.Token(index)
	if err != nil {
		return err
	}
	if !tok.IsWord() {
		return fmt.Errorf("click on token %d: %w", index, annotate.ErrNotWord)
	}
	c.gesture.Click(index, c.opts.Now())
	return nil
}

// OnEditTextChange records the current contents of the edit field.
func (c *Controller) OnEditTextChange(draft string) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	return c.store.SetDraft(draft)
}

// OnEditCommit writes the draft into the open token.
func (c *Controller) OnEditCommit() error {
	if err := c.requireReady(); err != nil {
		return err
	}
	idx, _ := c.store.Cursor()
	if err := c.store.CommitEdit(c.store.Draft()); err != nil {
		return err
	}
	c.log.Debug().Int("index", idx).Msg("edit committed")
	c.notify(Event{Kind: EventEditClosed, Index: idx})
	return nil
}

// OnEditCancel closes the edit field without changing the token.
func (c *Controller) OnEditCancel() error {
	if err := c.requireReady(); err != nil {
		return err
	}
	idx, open := c.store.Cursor()
	if !open {
		return nil
	}
	c.store.CancelEdit()
	c.notify(Event{Kind: EventEditClosed, Index: idx})
	return nil
}

// Save serializes the session, hands the markup to the holder and closes the
// session. An edit that is still open is committed with its draft first; a
// draft that cannot be committed is dropped. If the holder fails, the session
// stays open so the caller can retry.
func (c *Controller) Save() (string, error) {
	if err := c.requireReady(); err != nil {
		return "", err
	}

	if idx, open := c.store.Cursor(); open {
		if err := c.store.CommitEdit(c.store.Draft()); err != nil {
			c.log.Warn().Err(err).Int("index", idx).Msg("dropping open edit on save")
			c.store.CancelEdit()
		}
	}

	out := markup.Serialize(c.store.Tokens(), c.opts.Palette)
	if c.opts.Holder != nil {
		if err := c.opts.Holder.SetReport(out); err != nil {
			return "", fmt.Errorf("store report: %w", err)
		}
	}

	c.log.Info().Bool("dirty", c.store.Dirty()).Int("bytes", len(out)).Msg("session saved")
	c.discard()
	c.notify(Event{Kind: EventSaved, Index: -1})
	return out, nil
}

// Cancel discards the session without serializing it.
func (c *Controller) Cancel() error {
	if c.state == StateClosed {
		return ErrClosed
	}
	c.log.Info().Str("state", c.state.String()).Msg("session cancelled")
	c.discard()
	c.notify(Event{Kind: EventCancelled, Index: -1})
	return nil
}

func (c *Controller) requireReady() error {
	switch c.state {
	case StateReady:
		return nil
	case StateClosed:
		return ErrClosed
	default:
		return ErrNotReady
	}
}

// discard drops all session state. Bumping the generation invalidates any
// load still in flight.
func (c *Controller) discard() {
	if c.gesture != nil {
		c.gesture.Reset()
	}
	c.gen++
	c.gesture = nil
	c.store = nil
	c.state = StateClosed
	c.sessionID = ""
}

func (c *Controller) notify(e Event) {
	if c.opts.OnEvent != nil {
		c.opts.OnEvent(e)
	}
}
