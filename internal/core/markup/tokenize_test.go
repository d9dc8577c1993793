package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	yellowSpan = `<span style="background-color: yellow;">`
	greenSpan  = `<span style="background-color: lightgreen; font-weight: bold;">`
)

func single(t *testing.T) Palette {
	t.Helper()
	p, ok := Preset(PaletteSingle)
	require.True(t, ok)
	return p
}

func dual(t *testing.T) Palette {
	t.Helper()
	p, ok := Preset(PaletteDual)
	require.True(t, ok)
	return p
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "empty input",
			input: "",
			want:  []Token{},
		},
		{
			name:  "plain text",
			input: "Take Aspirin now",
			want: []Token{
				Word("Take", None), Whitespace(" "),
				Word("Aspirin", None), Whitespace(" "),
				Word("now", None),
			},
		},
		{
			name:  "whitespace runs are maximal",
			input: "a \n\t b",
			want:  []Token{Word("a", None), Whitespace(" \n\t "), Word("b", None)},
		},
		{
			name:  "leading and trailing whitespace",
			input: "  dose\n",
			want:  []Token{Whitespace("  "), Word("dose", None), Whitespace("\n")},
		},
		{
			name:  "highlighted word",
			input: yellowSpan + "Aspirin</span> helps",
			want:  []Token{Word("Aspirin", 1), Whitespace(" "), Word("helps", None)},
		},
		{
			name:  "highlighted phrase splits into words",
			input: yellowSpan + "acetylsalicylic acid</span>",
			want:  []Token{Word("acetylsalicylic", 1), Whitespace(" "), Word("acid", 1)},
		},
		{
			name:  "whitespace inside a wrapper is never highlighted",
			input: yellowSpan + " x </span>",
			want:  []Token{Whitespace(" "), Word("x", 1), Whitespace(" ")},
		},
		{
			name:  "word straddling wrapper end keeps first character category",
			input: yellowSpan + "Aspirin</span>, daily",
			want:  []Token{Word("Aspirin,", 1), Whitespace(" "), Word("daily", None)},
		},
		{
			name:  "word straddling wrapper start keeps first character category",
			input: "pre" + yellowSpan + "dnisolone</span>",
			want:  []Token{Word("prednisolone", None)},
		},
		{
			name:  "unrecognized color is plain text",
			input: `<span style="background-color: red;">Ibuprofen</span>`,
			want:  []Token{Word("Ibuprofen", None)},
		},
		{
			name:  "span without style is transparent",
			input: `<span>Ibuprofen</span>`,
			want:  []Token{Word("Ibuprofen", None)},
		},
		{
			name:  "other tags are transparent",
			input: "<b>Ibuprofen</b> " + yellowSpan + "<i>Aspirin</i></span>",
			want:  []Token{Word("Ibuprofen", None), Whitespace(" "), Word("Aspirin", 1)},
		},
		{
			name:  "entities decode",
			input: "a &amp; b &lt;5mg",
			want: []Token{
				Word("a", None), Whitespace(" "), Word("&", None), Whitespace(" "),
				Word("b", None), Whitespace(" "), Word("<5mg", None),
			},
		},
		{
			name:  "color matching is case insensitive",
			input: `<span style="BACKGROUND-COLOR: Yellow">Aspirin</span>`,
			want:  []Token{Word("Aspirin", 1)},
		},
		{
			name:  "unterminated wrapper degrades to plain text",
			input: "ok " + yellowSpan + "Aspirin daily",
			want: []Token{
				Word("ok", None), Whitespace(" "),
				Word("Aspirin", None), Whitespace(" "), Word("daily", None),
			},
		},
		{
			name:  "unterminated tag is kept as text",
			input: `ok <span style="background`,
			want:  []Token{Word("ok", None), Whitespace(" "), Word(`<span`, None), Whitespace(" "), Word(`style="background`, None)},
		},
		{
			name:  "stray close tag is ignored",
			input: "a</span> b",
			want:  []Token{Word("a", None), Whitespace(" "), Word("b", None)},
		},
		{
			name:  "multibyte text",
			input: "Принимать " + yellowSpan + "Аспирин</span>",
			want:  []Token{Word("Принимать", None), Whitespace(" "), Word("Аспирин", 1)},
		},
	}

	p := single(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input, p)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenize_DualPalette(t *testing.T) {
	input := greenSpan + "Aspirin</span> and " + `<span style="background-color: yellow; font-weight: bold;">Ibuprofn</span>`

	got := Tokenize(input, dual(t))

	assert.Equal(t, []Token{
		Word("Aspirin", 1), Whitespace(" "),
		Word("and", None), Whitespace(" "),
		Word("Ibuprofn", 2),
	}, got)
}

func TestTokenize_NoAdjacentSameKind(t *testing.T) {
	inputs := []string{
		"a" + yellowSpan + "b</span>c d",
		" " + yellowSpan + " </span> x",
		yellowSpan + "a</span>" + yellowSpan + "b</span>",
		"x\n\n" + yellowSpan + "y</span>\n",
	}

	p := single(t)
	for _, in := range inputs {
		tokens := Tokenize(in, p)
		for i, tok := range tokens {
			assert.NotEmpty(t, tok.Text, "input %q token %d is empty", in, i)
			if i > 0 {
				assert.NotEqual(t, tokens[i-1].Kind, tok.Kind, "input %q tokens %d and %d share a kind", in, i-1, i)
			}
			if tok.Kind == KindWhitespace {
				assert.Equal(t, None, tok.Category)
			}
		}
	}
}

func TestTokenize_PartitionInvariant(t *testing.T) {
	tests := []struct {
		input string
		plain string
	}{
		{input: "Take Aspirin now", plain: "Take Aspirin now"},
		{input: yellowSpan + "Aspirin</span> helps\n", plain: "Aspirin helps\n"},
		{input: "a" + yellowSpan + "b c</span>d", plain: "ab cd"},
		{input: "x &amp; y", plain: "x & y"},
	}

	p := single(t)
	for _, tt := range tests {
		assert.Equal(t, tt.plain, PlainText(Tokenize(tt.input, p)))
	}
}
