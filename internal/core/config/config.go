// Package config handles configuration loading and validation for rxmark.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/rxmark/internal/core/gesture"
	"github.com/colonyops/rxmark/internal/core/markup"
	"github.com/colonyops/rxmark/internal/core/report"
	"github.com/colonyops/rxmark/internal/core/search"
	"github.com/colonyops/rxmark/internal/core/styles"
)

// CustomPalette is the palette name used when categories are listed explicitly.
const CustomPalette = "custom"

// Config holds the application configuration.
type Config struct {
	Palette           string               `yaml:"palette"`
	Categories        []markup.CategoryDef `yaml:"categories"`
	DoubleClickWindow time.Duration        `yaml:"double_click_window"`
	LoadDelay         time.Duration        `yaml:"load_delay"`
	Search            SearchConfig         `yaml:"search"`
	TUI               TUIConfig            `yaml:"tui"`
	Export            ExportConfig         `yaml:"export"`
	DataDir           string               `yaml:"-"` // set by caller, not from config file
}

// SearchConfig configures the backend client used by `rxmark search`.
type SearchConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	Retries  int           `yaml:"retries"`
}

// TUIConfig configures the interactive editor.
type TUIConfig struct {
	Theme string `yaml:"theme"` // one of styles.ThemeNames()
}

// ExportConfig configures standalone HTML export.
type ExportConfig struct {
	Title string `yaml:"title"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Palette:           markup.DefaultPalette,
		DoubleClickWindow: gesture.DefaultWindow,
		Search: SearchConfig{
			Endpoint: search.DefaultEndpoint,
			Timeout:  30 * time.Second,
			Retries:  2,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
		Export: ExportConfig{
			Title: report.DefaultTitle,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Palette == "" && len(c.Categories) == 0 {
		c.Palette = defaults.Palette
	}
	if c.DoubleClickWindow == 0 {
		c.DoubleClickWindow = defaults.DoubleClickWindow
	}
	if c.Search.Endpoint == "" {
		c.Search.Endpoint = defaults.Search.Endpoint
	}
	if c.Search.Timeout == 0 {
		c.Search.Timeout = defaults.Search.Timeout
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Export.Title == "" {
		c.Export.Title = defaults.Export.Title
	}
}

// ResolvePalette returns the highlight palette. Explicit categories take
// precedence over a preset name.
func (c *Config) ResolvePalette() (markup.Palette, error) {
	if len(c.Categories) > 0 {
		cats := make([]markup.CategoryDef, len(c.Categories))
		copy(cats, c.Categories)
		return markup.Palette{Name: CustomPalette, Categories: cats}, nil
	}

	p, ok := markup.Preset(c.Palette)
	if !ok {
		return markup.Palette{}, fmt.Errorf("unknown palette %q", c.Palette)
	}
	return p, nil
}
