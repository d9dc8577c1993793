// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"
	"sort"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
	"paper": {
		Primary:    lipgloss.Color("#1d4ed8"),
		Secondary:  lipgloss.Color("#0e7490"),
		Foreground: lipgloss.Color("#1f2937"),
		Muted:      lipgloss.Color("#6b7280"),
		Background: lipgloss.Color("#fafafa"),
		Surface:    lipgloss.Color("#e5e7eb"),
		Success:    lipgloss.Color("#15803d"),
		Warning:    lipgloss.Color("#b45309"),
		Error:      lipgloss.Color("#b91c1c"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	SuccessStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	WarnStyle    lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style

	// Editor styles.
	TitleStyle     lipgloss.Style
	StatusStyle    lipgloss.Style
	DirtyStyle     lipgloss.Style
	HelpStyle      lipgloss.Style
	FocusStyle     lipgloss.Style
	EditFieldStyle lipgloss.Style
	SpinnerStyle   lipgloss.Style
)

func init() {
	p, _ := GetPalette(DefaultTheme)
	SetTheme(p)
}

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	InfoStyle = lipgloss.NewStyle().Foreground(p.Primary)
	WarnStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)

	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	StatusStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Surface).
		Padding(0, 1)
	DirtyStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Background(p.Surface).
		Bold(true)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	FocusStyle = lipgloss.NewStyle().
		Underline(true).
		Bold(true)
	EditFieldStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Surface)
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)
}

// cssColors maps the CSS named colors that show up in highlight palettes.
var cssColors = map[string]string{
	"yellow":      "#ffff00",
	"lightyellow": "#ffffe0",
	"gold":        "#ffd700",
	"lightgreen":  "#90ee90",
	"green":       "#008000",
	"lime":        "#00ff00",
	"orange":      "#ffa500",
	"red":         "#ff0000",
	"pink":        "#ffc0cb",
	"lightpink":   "#ffb6c1",
	"cyan":        "#00ffff",
	"aqua":        "#00ffff",
	"lightblue":   "#add8e6",
	"skyblue":     "#87ceeb",
	"blue":        "#0000ff",
	"violet":      "#ee82ee",
	"plum":        "#dda0dd",
	"magenta":     "#ff00ff",
	"lavender":    "#e6e6fa",
	"gray":        "#808080",
	"grey":        "#808080",
	"lightgray":   "#d3d3d3",
	"white":       "#ffffff",
	"black":       "#000000",
}

// ParseCSSColor resolves a CSS named or hex color.
func ParseCSSColor(css string) (colorful.Color, bool) {
	css = strings.ToLower(strings.TrimSpace(css))
	if hex, ok := cssColors[css]; ok {
		css = hex
	}
	if len(css) == 4 && css[0] == '#' {
		css = "#" + strings.Repeat(css[1:2], 2) + strings.Repeat(css[2:3], 2) + strings.Repeat(css[3:4], 2)
	}
	c, err := colorful.Hex(css)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// Highlight returns the style for a word highlighted with the given CSS
// background color. The foreground is black or white, whichever reads better
// on that background. Unknown colors fall back to the theme's warning color.
func Highlight(css string) lipgloss.Style {
	bg, ok := ParseCSSColor(css)
	if !ok {
		bg, _ = colorful.MakeColor(CurrentPalette.Warning)
	}

	fg := lipgloss.Color("#000000")
	if l, _, _ := bg.Lab(); l < 0.6 {
		fg = lipgloss.Color("#ffffff")
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Foreground(fg)
}
