package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/rxmark/internal/core/markup"
)

func words(parts ...string) []markup.Token {
	var tokens []markup.Token
	for i, p := range parts {
		if i%2 == 0 {
			tokens = append(tokens, markup.Word(p, markup.None))
		} else {
			tokens = append(tokens, markup.Whitespace(p))
		}
	}
	return tokens
}

func TestBuildLayout_Wraps(t *testing.T) {
	l := buildLayout(words("Take", " ", "aspirin", " ", "daily"), 10, -1, 0)

	require.Len(t, l.rows, 3)
	assert.Equal(t, position{row: 0, col: 0, width: 4}, l.pos[0])
	assert.Equal(t, position{row: 1, col: 0, width: 7}, l.pos[2])
	assert.Equal(t, position{row: 2, col: 0, width: 5}, l.pos[4])
	assert.Equal(t, []int{0, 2, 4}, l.words)
}

func TestBuildLayout_Whitespace(t *testing.T) {
	tests := []struct {
		name string
		ws   string
		want position
	}{
		{name: "blank line", ws: "\n\n", want: position{row: 2, col: 0, width: 1}},
		{name: "crlf", ws: "\r\n", want: position{row: 1, col: 0, width: 1}},
		{name: "tab stop", ws: "\t", want: position{row: 0, col: 4, width: 1}},
		{name: "spaces", ws: "   ", want: position{row: 0, col: 5, width: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := buildLayout(words("ab", tt.ws, "c"), 80, -1, 0)
			assert.Equal(t, tt.want, l.pos[2])
		})
	}
}

func TestBuildLayout_EditWidth(t *testing.T) {
	l := buildLayout(words("one", " ", "two"), 80, 0, 6)

	assert.Equal(t, 6, l.pos[0].width)
	assert.Equal(t, 7, l.pos[2].col)
}

func TestBuildLayout_DefaultWidth(t *testing.T) {
	l := buildLayout(words("x"), 0, -1, 0)
	assert.Len(t, l.rows, 1)
}

func TestLayout_WordAt(t *testing.T) {
	l := buildLayout(words("one", " ", "two"), 80, -1, 0)

	tests := []struct {
		name     string
		row, col int
		want     int
		ok       bool
	}{
		{name: "first word", row: 0, col: 2, want: 0, ok: true},
		{name: "second word", row: 0, col: 4, want: 2, ok: true},
		{name: "whitespace", row: 0, col: 3, want: -1},
		{name: "past end", row: 0, col: 40, want: -1},
		{name: "no such row", row: 5, col: 0, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.wordAt(tt.row, tt.col)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayout_Navigation(t *testing.T) {
	// one two
	// three
	l := buildLayout(words("one", " ", "two", "\n", "three"), 80, -1, 0)

	assert.Equal(t, 0, l.first())

	assert.Equal(t, 2, l.step(0, 1))
	assert.Equal(t, 4, l.step(4, 1), "clamped at end")
	assert.Equal(t, 0, l.step(0, -1), "clamped at start")

	assert.Equal(t, 4, l.vertical(2, 1))
	assert.Equal(t, 0, l.vertical(4, -1), "nearest by center")
	assert.Equal(t, 0, l.vertical(0, -1), "no row above")
	assert.Equal(t, 0, l.vertical(99, 1), "unknown start falls back to first")
}

func TestLayout_Empty(t *testing.T) {
	l := buildLayout(nil, 80, -1, 0)

	assert.Equal(t, -1, l.first())
	assert.Equal(t, -1, l.step(0, 1))
}
