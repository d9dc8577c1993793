// Package markup converts highlighted report markup into an ordered token
// stream and back.
//
// A report is plain text interleaved with highlight wrappers of the form
//
//	<span style="background-color: yellow;">Aspirin</span>
//
// Tokenize partitions the decoded text into maximal whitespace and word runs,
// attaching the wrapper's category to each word. Serialize emits the same
// wrapper syntax, so the pair round-trips at token level.
package markup

import (
	"fmt"
	"strings"
)

// Kind distinguishes whitespace runs from word runs.
type Kind int

const (
	KindWhitespace Kind = iota
	KindWord
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindWhitespace:
		return "whitespace"
	case KindWord:
		return "word"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Category is a highlight category. None means the word is not highlighted;
// any other value k names Palette.Categories[k-1].
type Category int

// None is the category of every whitespace token and of unhighlighted words.
const None Category = 0

// Token is one whitespace or word run.
type Token struct {
	Kind     Kind     `json:"kind"`
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// Whitespace returns a whitespace token.
func Whitespace(text string) Token {
	return Token{Kind: KindWhitespace, Text: text}
}

// Word returns a word token with the given category.
func Word(text string, cat Category) Token {
	return Token{Kind: KindWord, Text: text, Category: cat}
}

// IsWord reports whether the token is a word run.
func (t Token) IsWord() bool {
	return t.Kind == KindWord
}

// Highlighted reports whether the token is a word with a non-None category.
func (t Token) Highlighted() bool {
	return t.Kind == KindWord && t.Category != None
}

// Equal compares kind, text and category.
func (t Token) Equal(o Token) bool {
	return t.Kind == o.Kind && t.Text == o.Text && t.Category == o.Category
}

func (t Token) String() string {
	if t.Kind == KindWhitespace {
		return fmt.Sprintf("ws(%q)", t.Text)
	}
	return fmt.Sprintf("word(%q, %d)", t.Text, t.Category)
}

// PlainText concatenates the text of every token in order.
func PlainText(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// EqualTokens reports whether two token lists are equal token by token.
func EqualTokens(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
