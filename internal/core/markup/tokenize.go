package markup

import (
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// segment is a run of decoded text under one wrapper category.
type segment struct {
	text string
	cat  Category
}

// openSpan records a span that has not been closed yet and the index of the
// first segment it covers.
type openSpan struct {
	cat   Category
	first int
}

// Tokenize splits markup into whitespace and word tokens.
//
// The wrapper structure is parsed first into (text, category) segments; the
// segments are then scanned rune by rune. A word that straddles a wrapper
// boundary takes the category of its first character.
//
// Tokenize never fails. An unterminated span demotes everything from its
// opening tag to the end of input to None, and a tag cut off by the end of
// input is kept as literal None text.
func Tokenize(markup string, p Palette) []Token {
	return scan(segments(markup, p))
}

func segments(markup string, p Palette) []segment {
	var (
		segs     []segment
		stack    []openSpan
		consumed int
	)

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if !errors.Is(z.Err(), io.EOF) {
				break
			}
			if consumed < len(markup) {
				segs = append(segs, segment{text: markup[consumed:], cat: None})
			}
			break
		}
		consumed += len(z.Raw())

		switch tt {
		case html.TextToken:
			cat := None
			if len(stack) > 0 {
				cat = stack[len(stack)-1].cat
			}
			if text := string(z.Text()); text != "" {
				segs = append(segs, segment{text: text, cat: cat})
			}

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "span" {
				continue
			}
			cat := None
			if len(stack) > 0 {
				cat = stack[len(stack)-1].cat
			}
			if hasAttr {
				if c, ok := spanCategory(z, p); ok {
					cat = c
				}
			}
			stack = append(stack, openSpan{cat: cat, first: len(segs)})

		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "span" && len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) > 0 {
		for i := stack[0].first; i < len(segs); i++ {
			segs[i].cat = None
		}
	}

	return segs
}

func spanCategory(z *html.Tokenizer, p Palette) (Category, bool) {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "style" {
			if color, ok := backgroundColor(string(val)); ok {
				return p.Lookup(color)
			}
		}
		if !more {
			return None, false
		}
	}
}

func scan(segs []segment) []Token {
	tokens := make([]Token, 0, len(segs)*2)

	var (
		cur    strings.Builder
		kind   Kind
		cat    Category
		active bool
	)

	flush := func() {
		if !active {
			return
		}
		tokens = append(tokens, Token{Kind: kind, Text: cur.String(), Category: cat})
		cur.Reset()
		active = false
	}

	for _, seg := range segs {
		text := seg.text
		for i := 0; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			k := KindWord
			if unicode.IsSpace(r) {
				k = KindWhitespace
			}

			if !active || k != kind {
				flush()
				active = true
				kind = k
				cat = None
				if k == KindWord {
					cat = seg.cat
				}
			}

			cur.WriteString(text[i : i+size])
			i += size
		}
	}
	flush()

	return tokens
}
