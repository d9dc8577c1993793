// Package tui is the terminal front end for an edit session. It hosts an
// editor.Controller on the bubbletea update loop: every controller call
// happens inside Update, and work the controller posts from other goroutines
// arrives as postedMsg.
package tui

import (
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/colonyops/rxmark/internal/core/editor"
	"github.com/colonyops/rxmark/internal/core/gesture"
	"github.com/colonyops/rxmark/internal/core/markup"
	"github.com/colonyops/rxmark/internal/core/report"
	"github.com/colonyops/rxmark/internal/core/styles"
)

const (
	headerHeight = 2
	footerHeight = 2
	minEditWidth = 4
)

// Options configures the editor model.
type Options struct {
	Palette   markup.Palette
	Window    time.Duration
	LoadDelay time.Duration
	Holder    report.Holder
	Report    string
	Title     string
	Watcher   *report.Watcher // optional; reloads a clean session on change
	Logger    zerolog.Logger
	Scheduler gesture.Scheduler
	Now       func() time.Time
}

// Result is how the session ended.
type Result struct {
	Saved     bool
	Cancelled bool
	Markup    string
}

// Model is the bubbletea model for one edit session.
type Model struct {
	opts  Options
	ctrl  *editor.Controller
	queue *queue
	keys  keyMap
	log   zerolog.Logger

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	notices  Notices

	layout    layout
	focus     int
	editing   bool
	editIndex int

	width, height  int
	confirmDiscard bool
	result         Result
}

// New creates the model and starts loading opts.Report.
func New(opts Options) Model {
	q := newQueue()
	ctrl := editor.New(editor.Options{
		Palette:   opts.Palette,
		Window:    opts.Window,
		LoadDelay: opts.LoadDelay,
		Holder:    opts.Holder,
		Poster:    q,
		Scheduler: opts.Scheduler,
		Now:       opts.Now,
		Logger:    opts.Logger,
	})

	input := textinput.New()
	input.Prompt = ""
	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.CurrentPalette.Primary
	input.SetStyles(inputStyles)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle
	h.Styles.ShortDesc = styles.MutedStyle
	h.Styles.ShortSeparator = styles.MutedStyle
	h.ShortSeparator = " • "

	if opts.Title == "" {
		opts.Title = report.DefaultTitle
	}

	m := Model{
		opts:      opts,
		ctrl:      ctrl,
		queue:     q,
		keys:      defaultKeys(),
		log:       opts.Logger,
		input:     input,
		spinner:   sp,
		help:      h,
		focus:     -1,
		editIndex: -1,
		width:     defaultWidth,
		height:    24,
	}
	m.viewport = viewport.New(
		viewport.WithWidth(m.width),
		viewport.WithHeight(m.bodyHeight()),
	)

	ctrl.Open(opts.Report)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForPosted(m.queue),
		waitForChange(m.opts.Watcher),
	)
}

// Result reports how the session ended. It is only meaningful after the
// program exits.
func (m Model) Result() Result {
	return m.result
}

// Controller exposes the session controller for callers that inspect state
// after the program exits.
func (m Model) Controller() *editor.Controller {
	return m.ctrl
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postedMsg:
		msg.fn()
		cmd := m.sync()
		return m, tea.Batch(cmd, waitForPosted(m.queue))

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetWidth(msg.Width)
		m.viewport.SetWidth(msg.Width)
		m.viewport.SetHeight(m.bodyHeight())
		cmd := m.sync()
		return m, cmd

	case spinner.TickMsg:
		if m.ctrl.State() != editor.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case noticeTickMsg:
		m.notices.Tick(noticeTickInterval)
		if m.notices.Len() == 0 {
			m.notices.ticking = false
			return m, nil
		}
		return m, scheduleNoticeTick()

	case reportChangedMsg:
		return m.handleReportChanged(msg)

	case tea.MouseClickMsg:
		return m.handleClick(msg)

	case tea.KeyPressMsg:
		if key.Matches(msg, m.keys.Quit) {
			_ = m.ctrl.Cancel()
			return m.finish(Result{Cancelled: true})
		}
		switch {
		case m.ctrl.State() == editor.StateLoading:
			if key.Matches(msg, m.keys.Cancel) {
				_ = m.ctrl.Cancel()
				return m.finish(Result{Cancelled: true})
			}
			return m, nil
		case m.editing:
			return m.handleEditKey(msg)
		default:
			return m.handleNavKey(msg)
		}
	}

	return m, nil
}

func (m Model) handleNavKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Cancel) {
		m.confirmDiscard = false
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.focus = m.layout.step(m.focus, -1)
	case key.Matches(msg, m.keys.Right):
		m.focus = m.layout.step(m.focus, 1)
	case key.Matches(msg, m.keys.Up):
		m.focus = m.layout.vertical(m.focus, -1)
	case key.Matches(msg, m.keys.Down):
		m.focus = m.layout.vertical(m.focus, 1)

	case key.Matches(msg, m.keys.Click):
		if m.focus >= 0 {
			if err := m.ctrl.OnClick(m.focus); err != nil {
				cmd := m.notify(levelError, err.Error())
				return m, cmd
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		// Two clicks well inside the window resolve to an edit.
		if m.focus >= 0 {
			for range 2 {
				if err := m.ctrl.OnClick(m.focus); err != nil {
					cmd := m.notify(levelError, err.Error())
					return m, cmd
				}
			}
		}
		cmd := m.sync()
		return m, cmd

	case key.Matches(msg, m.keys.Save):
		return m.save()

	case key.Matches(msg, m.keys.Cancel):
		if m.ctrl.Dirty() && !m.confirmDiscard {
			m.confirmDiscard = true
			cmd := m.notify(levelWarning, "unsaved changes: press q again to discard")
			return m, cmd
		}
		_ = m.ctrl.Cancel()
		return m.finish(Result{Cancelled: true})

	default:
		return m, nil
	}

	m.scrollToFocus()
	m.refresh()
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Commit):
		if err := m.ctrl.OnEditCommit(); err != nil {
			cmd := m.notify(levelError, err.Error())
			return m, cmd
		}
		cmd := m.sync()
		return m, cmd

	case key.Matches(msg, m.keys.Discard):
		if err := m.ctrl.OnEditCancel(); err != nil {
			cmd := m.notify(levelError, err.Error())
			return m, cmd
		}
		cmd := m.sync()
		return m, cmd

	case key.Matches(msg, m.keys.Save):
		return m.save()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if err := m.ctrl.OnEditTextChange(m.input.Value()); err != nil {
		m.log.Error().Err(err).Msg("draft rejected")
	}
	syncCmd := m.sync()
	return m, tea.Batch(cmd, syncCmd)
}

func (m Model) handleClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft || m.ctrl.State() != editor.StateReady {
		return m, nil
	}

	row := mouse.Y - headerHeight
	if row < 0 || row >= m.bodyHeight() {
		return m, nil
	}
	idx, ok := m.layout.wordAt(row+m.viewport.YOffset(), mouse.X)
	if !ok {
		return m, nil
	}

	// Clicking away from the edit field applies it.
	if m.editing {
		if idx == m.editIndex {
			return m, nil
		}
		if err := m.ctrl.OnEditCommit(); err != nil {
			cmd := m.notify(levelError, err.Error())
			return m, cmd
		}
		cmd := m.sync()
		return m, cmd
	}

	m.focus = idx
	m.confirmDiscard = false
	if err := m.ctrl.OnClick(idx); err != nil {
		cmd := m.notify(levelError, err.Error())
		return m, cmd
	}
	cmd := m.sync()
	return m, cmd
}

func (m Model) handleReportChanged(msg reportChangedMsg) (tea.Model, tea.Cmd) {
	next := waitForChange(m.opts.Watcher)

	if m.ctrl.State() == editor.StateReady && (m.ctrl.Dirty() || m.editing) {
		cmd := m.notify(levelWarning, "report changed on disk; saving will overwrite it")
		return m, tea.Batch(next, cmd)
	}

	content, err := m.opts.Holder.Report()
	if err != nil {
		cmd := m.notify(levelError, "reload report: "+err.Error())
		return m, tea.Batch(next, cmd)
	}

	m.log.Info().Str("path", msg.Path).Msg("report changed, reloading")
	m.ctrl.Open(content)
	m.focus = -1
	cmd := m.sync()
	notice := m.notify(levelInfo, "report reloaded")
	return m, tea.Batch(next, cmd, m.spinner.Tick, notice)
}

func (m Model) save() (tea.Model, tea.Cmd) {
	out, err := m.ctrl.Save()
	if err != nil {
		m.log.Error().Err(err).Msg("save failed")
		cmd := m.sync()
		notice := m.notify(levelError, "save failed: "+err.Error())
		return m, tea.Batch(cmd, notice)
	}
	return m.finish(Result{Saved: true, Markup: out})
}

func (m Model) finish(r Result) (tea.Model, tea.Cmd) {
	m.result = r
	m.editing = false
	m.queue.close()
	return m, tea.Quit
}

func (m *Model) notify(level noticeLevel, text string) tea.Cmd {
	m.notices.Push(level, text)
	if m.notices.ticking {
		return nil
	}
	m.notices.ticking = true
	return scheduleNoticeTick()
}

// sync pulls controller state into the view: it opens or closes the edit
// field to match the store's cursor and rebuilds the layout.
func (m *Model) sync() tea.Cmd {
	var cmd tea.Cmd

	idx, open := m.ctrl.Cursor()
	switch {
	case open && (!m.editing || idx != m.editIndex):
		m.editing = true
		m.editIndex = idx
		m.focus = idx
		m.input.SetValue(m.ctrl.Draft())
		m.input.CursorEnd()
		cmd = m.input.Focus()
	case !open && m.editing:
		m.editing = false
		m.editIndex = -1
		m.input.Blur()
	}

	if m.ctrl.State() != editor.StateReady {
		m.layout = layout{}
		m.focus = -1
		m.refresh()
		return cmd
	}

	m.relayout()
	if _, ok := m.layout.pos[m.focus]; !ok {
		m.focus = m.layout.first()
	}
	m.scrollToFocus()
	m.refresh()
	return cmd
}

func (m *Model) relayout() {
	editWidth := 0
	if m.editing {
		editWidth = max(ansi.StringWidth(m.input.Value())+1, minEditWidth)
		m.input.SetWidth(editWidth)
	}
	m.layout = buildLayout(m.ctrl.Tokens(), m.width, m.editIndex, editWidth)
}

func (m *Model) scrollToFocus() {
	p, ok := m.layout.pos[m.focus]
	if !ok {
		return
	}
	top := m.viewport.YOffset()
	visible := m.bodyHeight()
	switch {
	case p.row < top:
		m.viewport.SetYOffset(p.row)
	case p.row >= top+visible:
		m.viewport.SetYOffset(p.row - visible + 1)
	}
}

func (m Model) bodyHeight() int {
	return max(m.height-headerHeight-footerHeight, 1)
}
