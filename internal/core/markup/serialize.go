package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// textEscaper escapes only what the HTML tokenizer would otherwise read as
// markup. Quotes are left alone so plain text stays byte-identical.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Serialize renders tokens back to markup. Whitespace and unhighlighted words
// are written as text; highlighted words are wrapped in a span carrying the
// category color.
func Serialize(tokens []Token, p Palette) string {
	var b strings.Builder
	for _, t := range tokens {
		def, ok := p.Def(t.Category)
		if t.Kind != KindWord || !ok {
			_, _ = textEscaper.WriteString(&b, t.Text)
			continue
		}

		b.WriteString(`<span style="`)
		b.WriteString(html.EscapeString(def.styleAttr()))
		b.WriteString(`">`)
		_, _ = textEscaper.WriteString(&b, t.Text)
		b.WriteString(`</span>`)
	}
	return b.String()
}
