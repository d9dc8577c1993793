package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/rxmark/internal/core/editor"
	"github.com/colonyops/rxmark/internal/core/markup"
	"github.com/colonyops/rxmark/internal/core/styles"
)

// View implements tea.Model.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) render() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	if m.ctrl.State() == editor.StateLoading {
		body := m.spinner.View() + " " + styles.MutedStyle.Render("Loading report...")
		b.WriteString(lipgloss.NewStyle().Height(m.bodyHeight()).Render(body))
	} else {
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.helpView())

	return m.notices.Overlay(b.String(), m.width, m.height)
}

func (m Model) headerView() string {
	title := styles.TitleStyle.Render(m.opts.Title)
	palette := styles.MutedStyle.Render("palette: " + m.ctrl.Palette().Name)
	return title + "  " + palette
}

func (m Model) statusView() string {
	var parts []string

	switch m.ctrl.State() {
	case editor.StateLoading:
		parts = append(parts, styles.StatusStyle.Render("loading"))
	case editor.StateReady:
		if m.ctrl.Dirty() {
			parts = append(parts, styles.DirtyStyle.Render("● modified"))
		} else {
			parts = append(parts, styles.StatusStyle.Render("unchanged"))
		}
		if tokens := m.ctrl.Tokens(); m.focus >= 0 && m.focus < len(tokens) {
			tok := tokens[m.focus]
			label := m.ctrl.Palette().Label(tok.Category)
			parts = append(parts, styles.MutedStyle.Render(fmt.Sprintf("%q %s", tok.Text, label)))
		}
	}

	return strings.Join(parts, "  ")
}

func (m Model) helpView() string {
	if m.editing {
		return m.help.ShortHelpView(m.keys.editHelp())
	}
	return m.help.ShortHelpView(m.keys.navHelp())
}

// refresh re-renders the token rows into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderBody())
}

func (m Model) renderBody() string {
	tokens := m.ctrl.Tokens()
	if tokens == nil {
		return ""
	}

	palette := m.ctrl.Palette()
	lines := make([]string, len(m.layout.rows))
	for r, row := range m.layout.rows {
		var b strings.Builder
		for _, p := range row {
			switch {
			case !p.word:
				b.WriteString(p.text)
			case m.editing && p.index == m.editIndex:
				b.WriteString(styles.EditFieldStyle.Render(m.input.View()))
			default:
				b.WriteString(m.wordStyle(tokens[p.index].Category, palette, p.index == m.focus).Render(p.text))
			}
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (m Model) wordStyle(cat markup.Category, palette markup.Palette, focused bool) lipgloss.Style {
	def, ok := palette.Def(cat)
	if !ok {
		if focused {
			return styles.FocusStyle
		}
		return lipgloss.NewStyle()
	}

	style := styles.Highlight(def.Color)
	if focused {
		style = style.Underline(true).Bold(true)
	}
	return style
}
