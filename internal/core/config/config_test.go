package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/rxmark/internal/core/markup"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "/data")
	require.NoError(t, err)

	want := DefaultConfig()
	want.DataDir = "/data"
	assert.Equal(t, &want, cfg)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := writeConfig(t, `
palette: dual
double_click_window: 300ms
load_delay: 250ms
search:
  endpoint: https://backend.example.com/api/v1/find_medications/
  timeout: 5s
  retries: 4
tui:
  theme: gruvbox
export:
  title: Weekly summary
`)

	cfg, err := Load(path, "/data")
	require.NoError(t, err)

	assert.Equal(t, markup.PaletteDual, cfg.Palette)
	assert.Equal(t, 300*time.Millisecond, cfg.DoubleClickWindow)
	assert.Equal(t, 250*time.Millisecond, cfg.LoadDelay)
	assert.Equal(t, "https://backend.example.com/api/v1/find_medications/", cfg.Search.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 4, cfg.Search.Retries)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, "Weekly summary", cfg.Export.Title)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "tui:\n  theme: paper\n"), "/data")
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, "paper", cfg.TUI.Theme)
	assert.Equal(t, defaults.Palette, cfg.Palette)
	assert.Equal(t, defaults.DoubleClickWindow, cfg.DoubleClickWindow)
	assert.Equal(t, defaults.Search, cfg.Search)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "bad yaml", body: "palette: [", wantErr: "parse config file"},
		{name: "unknown palette", body: "palette: rainbow", wantErr: "palette"},
		{name: "window too long", body: "double_click_window: 5s", wantErr: "must be between"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), "/data")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolvePalette(t *testing.T) {
	t.Run("preset", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Palette = markup.PaletteDual

		p, err := cfg.ResolvePalette()
		require.NoError(t, err)
		assert.Equal(t, markup.PaletteDual, p.Name)
		assert.Len(t, p.Categories, 2)
	})

	t.Run("explicit categories win", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Categories = []markup.CategoryDef{{Name: "flag", Color: "orange"}}

		p, err := cfg.ResolvePalette()
		require.NoError(t, err)
		assert.Equal(t, CustomPalette, p.Name)
		assert.Equal(t, cfg.Categories, p.Categories)

		p.Categories[0].Color = "red"
		assert.Equal(t, "orange", cfg.Categories[0].Color, "palette must not alias config")
	})

	t.Run("unknown preset", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Palette = "rainbow"

		_, err := cfg.ResolvePalette()
		assert.Error(t, err)
	})
}
