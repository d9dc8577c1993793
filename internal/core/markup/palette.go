package markup

import (
	"sort"
	"strings"
)

// Built-in palette names.
const (
	PaletteSingle = "single"
	PaletteDual   = "dual"
)

// DefaultPalette is the palette used when the config does not name one.
const DefaultPalette = PaletteSingle

// CategoryDef describes one highlight category and how it is written to markup.
type CategoryDef struct {
	Name  string `yaml:"name"  json:"name"`
	Color string `yaml:"color" json:"color"`           // CSS color in background-color
	Style string `yaml:"style" json:"style,omitempty"` // extra declarations appended after the color
}

// Palette is the ordered set of highlight categories. ToggleHighlight cycles
// None -> Categories[0] -> Categories[1] -> ... -> None.
type Palette struct {
	Name       string
	Categories []CategoryDef
}

var presets = map[string]Palette{
	PaletteSingle: {
		Name: PaletteSingle,
		Categories: []CategoryDef{
			{Name: "highlighted", Color: "yellow"},
		},
	},
	// Mirrors the search backend: lightgreen marks dictionary matches,
	// yellow marks fuzzy matches.
	PaletteDual: {
		Name: PaletteDual,
		Categories: []CategoryDef{
			{Name: "exact", Color: "lightgreen", Style: "font-weight: bold;"},
			{Name: "fuzzy", Color: "yellow", Style: "font-weight: bold;"},
		},
	},
}

// Preset returns a copy of the named built-in palette.
func Preset(name string) (Palette, bool) {
	p, ok := presets[name]
	if !ok {
		return Palette{}, false
	}
	cats := make([]CategoryDef, len(p.Categories))
	copy(cats, p.Categories)
	return Palette{Name: p.Name, Categories: cats}, true
}

// PresetNames returns the sorted names of the built-in palettes.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Next returns the category following c in the toggle cycle.
func (p Palette) Next(c Category) Category {
	n := len(p.Categories) + 1
	next := (int(c) + 1) % n
	if next < 0 {
		return None
	}
	return Category(next)
}

// Def returns the definition for c. It returns false for None and for
// categories outside the palette.
func (p Palette) Def(c Category) (CategoryDef, bool) {
	if c <= None || int(c) > len(p.Categories) {
		return CategoryDef{}, false
	}
	return p.Categories[c-1], true
}

// Label returns the category name, or "none".
func (p Palette) Label(c Category) string {
	def, ok := p.Def(c)
	if !ok {
		return "none"
	}
	return def.Name
}

// Lookup maps a CSS color value to its category. Matching is case-insensitive.
func (p Palette) Lookup(color string) (Category, bool) {
	color = normalizeColor(color)
	if color == "" {
		return None, false
	}
	for i, def := range p.Categories {
		if normalizeColor(def.Color) == color {
			return Category(i + 1), true
		}
	}
	return None, false
}

// styleAttr renders the style attribute value for a category.
func (d CategoryDef) styleAttr() string {
	s := "background-color: " + d.Color + ";"
	if style := strings.TrimSpace(d.Style); style != "" {
		s += " " + style
	}
	return s
}

func normalizeColor(c string) string {
	c = strings.TrimSpace(c)
	c = strings.TrimSuffix(c, "!important")
	return strings.ToLower(strings.TrimSpace(c))
}

// backgroundColor extracts the background color from an inline style
// attribute, accepting either background-color or the background shorthand.
func backgroundColor(style string) (string, bool) {
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(prop)) {
		case "background-color", "background":
			if v := normalizeColor(val); v != "" {
				return v, true
			}
		}
	}
	return "", false
}
