package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/rxmark/internal/core/styles"
)

const (
	defaultNoticeTTL   = 4 * time.Second
	defaultMaxNotices  = 3
	noticeTickInterval = 100 * time.Millisecond
	noticeWidth        = 48
)

type noticeLevel int

const (
	levelInfo noticeLevel = iota
	levelWarning
	levelError
)

type notice struct {
	level     noticeLevel
	message   string
	remaining time.Duration
}

type noticeTickMsg time.Time

func scheduleNoticeTick() tea.Cmd {
	return tea.Tick(noticeTickInterval, func(t time.Time) tea.Msg {
		return noticeTickMsg(t)
	})
}

// Notices manages short-lived status messages shown over the editor.
type Notices struct {
	items   []notice
	ticking bool
}

// Push adds a message. If the stack exceeds defaultMaxNotices, the oldest
// message is evicted.
func (n *Notices) Push(level noticeLevel, msg string) {
	n.items = append(n.items, notice{level: level, message: msg, remaining: defaultNoticeTTL})
	if len(n.items) > defaultMaxNotices {
		n.items = n.items[len(n.items)-defaultMaxNotices:]
	}
}

// Tick decrements the remaining TTL on all messages by d and removes any
// that have expired.
func (n *Notices) Tick(d time.Duration) {
	alive := n.items[:0]
	for _, it := range n.items {
		it.remaining -= d
		if it.remaining > 0 {
			alive = append(alive, it)
		}
	}
	n.items = alive
}

// Len returns the number of active messages.
func (n *Notices) Len() int {
	return len(n.items)
}

// View renders the stack, oldest at top.
func (n *Notices) View() string {
	if len(n.items) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(n.items))
	for _, it := range n.items {
		var style lipgloss.Style
		switch it.level {
		case levelError:
			style = styles.ErrorStyle
		case levelWarning:
			style = styles.WarnStyle
		default:
			style = styles.InfoStyle
		}
		rendered = append(rendered, style.
			Border(lipgloss.RoundedBorder()).
			Width(noticeWidth).
			Render(it.message))
	}

	return strings.Join(rendered, "\n")
}

// Overlay composites the stack over background in the lower-right corner.
func (n *Notices) Overlay(background string, width, height int) string {
	content := n.View()
	if content == "" {
		return background
	}

	bgLayer := lipgloss.NewLayer(background)
	layer := lipgloss.NewLayer(content)

	x := max(width-lipgloss.Width(content)-1, 0)
	y := max(height-lipgloss.Height(content)-2, 0)
	layer.X(x).Y(y).Z(2)

	return lipgloss.NewCompositor(bgLayer, layer).Render()
}
