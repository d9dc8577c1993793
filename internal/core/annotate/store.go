// Package annotate holds the in-memory token list of one edit session and
// every mutation that may be applied to it.
package annotate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/colonyops/rxmark/internal/core/markup"
)

// Errors returned for operations the caller should never issue.
var (
	ErrIndexOutOfRange = errors.New("token index out of range")
	ErrNotWord         = errors.New("token is not a word")
	ErrNoOpenEdit      = errors.New("no token is open for editing")
	ErrInvalidText     = errors.New("edited text must be a single non-empty word")
)

// Store owns the token list and the edit cursor. It is not safe for
// concurrent use; callers serialize access through one event loop.
type Store struct {
	tokens  []markup.Token
	palette markup.Palette
	cursor  int // -1 when no token is open for editing
	draft   string
	dirty   bool
}

// New creates a store that takes ownership of tokens.
func New(tokens []markup.Token, palette markup.Palette) *Store {
	return &Store{
		tokens:  tokens,
		palette: palette,
		cursor:  -1,
	}
}

// Len returns the number of tokens.
func (s *Store) Len() int {
	return len(s.tokens)
}

// Token returns the token at index i.
func (s *Store) Token(i int) (markup.Token, error) {
	if i < 0 || i >= len(s.tokens) {
		return markup.Token{}, fmt.Errorf("token %d: %w", i, ErrIndexOutOfRange)
	}
	return s.tokens[i], nil
}

// Tokens returns a copy of the token list.
func (s *Store) Tokens() []markup.Token {
	out := make([]markup.Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Palette returns the palette the store cycles through.
func (s *Store) Palette() markup.Palette {
	return s.palette
}

// Cursor returns the index open for editing, if any.
func (s *Store) Cursor() (int, bool) {
	return s.cursor, s.cursor >= 0
}

// Draft returns the pending text for the open token.
func (s *Store) Draft() string {
	return s.draft
}

// Dirty reports whether any token changed since the store was created.
func (s *Store) Dirty() bool {
	return s.dirty
}

func (s *Store) word(i int) error {
	tok, err := s.Token(i)
	if err != nil {
		return err
	}
	if !tok.IsWord() {
		return fmt.Errorf("token %d: %w", i, ErrNotWord)
	}
	return nil
}

// ToggleHighlight advances the word at i to the next category in the
// palette cycle. The token under the edit cursor is left untouched.
func (s *Store) ToggleHighlight(i int) error {
	if err := s.word(i); err != nil {
		return err
	}
	if i == s.cursor {
		return nil
	}
	s.tokens[i].Category = s.palette.Next(s.tokens[i].Category)
	s.dirty = true
	return nil
}

// OpenEdit moves the edit cursor to the word at i. A previously open edit is
// committed with its current draft first. The draft starts as the word's text.
func (s *Store) OpenEdit(i int) error {
	if err := s.word(i); err != nil {
		return err
	}
	if s.cursor == i {
		return nil
	}
	if s.cursor >= 0 {
		if err := s.CommitEdit(s.draft); err != nil {
			// An unusable draft is dropped rather than blocking the new edit.
			s.CancelEdit()
		}
	}
	s.cursor = i
	s.draft = s.tokens[i].Text
	return nil
}

// SetDraft records the externally edited text for the open token.
func (s *Store) SetDraft(text string) error {
	if s.cursor < 0 {
		return ErrNoOpenEdit
	}
	s.draft = text
	return nil
}

// CommitEdit replaces the open token's text verbatim and closes the cursor.
// Token boundaries never change, so text must be one non-empty word; on
// ErrInvalidText the cursor stays open.
func (s *Store) CommitEdit(text string) error {
	if s.cursor < 0 {
		return ErrNoOpenEdit
	}
	if !validWord(text) {
		return fmt.Errorf("token %d: %q: %w", s.cursor, text, ErrInvalidText)
	}
	if s.tokens[s.cursor].Text != text {
		s.tokens[s.cursor].Text = text
		s.dirty = true
	}
	s.cursor = -1
	s.draft = ""
	return nil
}

// CancelEdit closes the cursor without changing the token.
func (s *Store) CancelEdit() {
	s.cursor = -1
	s.draft = ""
}

func validWord(text string) bool {
	return text != "" && !strings.ContainsFunc(text, unicode.IsSpace)
}
