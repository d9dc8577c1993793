package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/rxmark/internal/core/markup"
)

const (
	defaultWidth = 80
	tabWidth     = 4
)

// piece is one placed token, or part of a whitespace token split by a newline.
type piece struct {
	index int
	word  bool
	text  string
	col   int
	width int
}

type position struct {
	row, col, width int
}

// layout places tokens onto terminal rows. It is rebuilt whenever the token
// list, the edit field or the window width changes, and doubles as the hit
// map for mouse clicks.
type layout struct {
	rows  [][]piece
	words []int // word token indices in reading order
	pos   map[int]position
}

// buildLayout wraps tokens at width. Newlines in whitespace tokens start a
// new row; words never split. The token at editIndex occupies editWidth
// cells instead of its text width.
func buildLayout(tokens []markup.Token, width, editIndex, editWidth int) layout {
	if width <= 0 {
		width = defaultWidth
	}

	l := layout{
		rows: [][]piece{nil},
		pos:  make(map[int]position),
	}
	col := 0
	newline := func() {
		l.rows = append(l.rows, nil)
		col = 0
	}

	for i, tok := range tokens {
		if !tok.IsWord() {
			var b strings.Builder
			flush := func() {
				if b.Len() == 0 {
					return
				}
				l.add(piece{index: i, text: b.String(), col: col, width: b.Len()})
				col += b.Len()
				b.Reset()
			}

			for _, r := range tok.Text {
				switch r {
				case '\n':
					flush()
					newline()
				case '\r':
				default:
					n := 1
					if r == '\t' {
						n = tabWidth - (col+b.Len())%tabWidth
					}
					n = min(n, width-col-b.Len())
					if n > 0 {
						b.WriteString(strings.Repeat(" ", n))
					}
				}
			}
			flush()
			continue
		}

		w := ansi.StringWidth(tok.Text)
		if i == editIndex {
			w = editWidth
		}
		if col > 0 && col+w > width {
			newline()
		}

		l.pos[i] = position{row: len(l.rows) - 1, col: col, width: w}
		l.words = append(l.words, i)
		l.add(piece{index: i, word: true, text: tok.Text, col: col, width: w})
		col += w
	}

	return l
}

func (l *layout) add(p piece) {
	last := len(l.rows) - 1
	l.rows[last] = append(l.rows[last], p)
}

// wordAt returns the word token under the cell (row, col).
func (l layout) wordAt(row, col int) (int, bool) {
	if row < 0 || row >= len(l.rows) {
		return -1, false
	}
	for _, p := range l.rows[row] {
		if p.word && col >= p.col && col < p.col+p.width {
			return p.index, true
		}
	}
	return -1, false
}

// first returns the first word, or -1 when there are none.
func (l layout) first() int {
	if len(l.words) == 0 {
		return -1
	}
	return l.words[0]
}

// step moves delta words forward or backward in reading order, clamped to
// the ends.
func (l layout) step(from, delta int) int {
	if len(l.words) == 0 {
		return -1
	}
	at := 0
	for k, idx := range l.words {
		if idx == from {
			at = k
			break
		}
	}
	at = max(0, min(len(l.words)-1, at+delta))
	return l.words[at]
}

// vertical moves to the nearest word on the next row above (dir < 0) or
// below (dir > 0) that has any words.
func (l layout) vertical(from, dir int) int {
	p, ok := l.pos[from]
	if !ok {
		return l.first()
	}
	center := p.col + p.width/2

	for row := p.row + dir; row >= 0 && row < len(l.rows); row += dir {
		best, bestDist := -1, 0
		for _, pc := range l.rows[row] {
			if !pc.word {
				continue
			}
			dist := abs(pc.col + pc.width/2 - center)
			if best < 0 || dist < bestDist {
				best, bestDist = pc.index, dist
			}
		}
		if best >= 0 {
			return best
		}
	}
	return from
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
