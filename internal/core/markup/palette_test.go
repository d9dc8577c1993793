package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPalette_Next(t *testing.T) {
	s := single(t)
	assert.Equal(t, Category(1), s.Next(None))
	assert.Equal(t, None, s.Next(1))

	d := dual(t)
	assert.Equal(t, Category(1), d.Next(None))
	assert.Equal(t, Category(2), d.Next(1))
	assert.Equal(t, None, d.Next(2))

	empty := Palette{}
	assert.Equal(t, None, empty.Next(None))
}

func TestPalette_Lookup(t *testing.T) {
	d := dual(t)

	cat, ok := d.Lookup(" LightGreen ")
	assert.True(t, ok)
	assert.Equal(t, Category(1), cat)

	cat, ok = d.Lookup("yellow !important")
	assert.True(t, ok)
	assert.Equal(t, Category(2), cat)

	_, ok = d.Lookup("red")
	assert.False(t, ok)

	_, ok = d.Lookup("")
	assert.False(t, ok)
}

func TestPalette_Label(t *testing.T) {
	d := dual(t)
	assert.Equal(t, "none", d.Label(None))
	assert.Equal(t, "exact", d.Label(1))
	assert.Equal(t, "fuzzy", d.Label(2))
	assert.Equal(t, "none", d.Label(3))
}

func TestPreset_ReturnsCopy(t *testing.T) {
	a := single(t)
	a.Categories[0].Color = "red"

	b := single(t)
	assert.Equal(t, "yellow", b.Categories[0].Color)

	_, ok := Preset("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{PaletteDual, PaletteSingle}, PresetNames())
}

func TestBackgroundColor(t *testing.T) {
	tests := []struct {
		style string
		want  string
		ok    bool
	}{
		{style: "background-color: yellow;", want: "yellow", ok: true},
		{style: "font-weight: bold; background-color:lightgreen", want: "lightgreen", ok: true},
		{style: "background: #FFFF00", want: "#ffff00", ok: true},
		{style: "color: yellow", ok: false},
		{style: "background-color: ;", ok: false},
	}

	for _, tt := range tests {
		got, ok := backgroundColor(tt.style)
		assert.Equal(t, tt.ok, ok, tt.style)
		assert.Equal(t, tt.want, got, tt.style)
	}
}
