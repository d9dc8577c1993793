package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/rxmark/internal/core/markup"
	"github.com/colonyops/rxmark/internal/core/styles"
)

const (
	maxDoubleClickWindow = 2 * time.Second
	maxLoadDelay         = 10 * time.Second
	maxRetries           = 10
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is structurally valid. All problems
// are reported together as criterio.FieldErrors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, required),
		c.validatePalette(),
		field("double_click_window", durationWithin(c.DoubleClickWindow, time.Nanosecond, maxDoubleClickWindow)),
		field("load_delay", durationWithin(c.LoadDelay, 0, maxLoadDelay)),
		criterio.Run("search.endpoint", c.Search.Endpoint, httpURL),
		field("search.timeout", durationWithin(c.Search.Timeout, time.Nanosecond, 10*time.Minute)),
		field("search.retries", retries(c.Search.Retries)),
		criterio.Run("tui.theme", c.TUI.Theme, theme),
	)
}

// ValidateDeep runs Validate and then checks that the config file and data
// directory are usable. The configPath argument specifies the config file
// location to check (empty string skips the check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if len(c.Categories) > 0 && c.Palette != "" && c.Palette != CustomPalette {
		warnings = append(warnings, ValidationWarning{
			Category: "Palette",
			Item:     c.Palette,
			Message:  "categories are set, palette preset is ignored",
		})
	}

	if c.LoadDelay > 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Editor",
			Item:     "load_delay",
			Message:  fmt.Sprintf("reports open after an artificial %s delay", c.LoadDelay),
		})
	}

	return warnings
}

func (c *Config) validatePalette() error {
	var errs criterio.FieldErrorsBuilder

	if len(c.Categories) == 0 {
		if _, ok := markup.Preset(c.Palette); !ok {
			errs = errs.Append("palette", fmt.Errorf("unknown palette %q (available: %s)",
				c.Palette, strings.Join(markup.PresetNames(), ", ")))
		}
		return errs.ToError()
	}

	seen := make(map[string]int, len(c.Categories))
	for i, cat := range c.Categories {
		prefix := fmt.Sprintf("categories[%d]", i)
		if strings.TrimSpace(cat.Name) == "" {
			errs = errs.Append(prefix+".name", fmt.Errorf("name is required"))
		}

		color := strings.ToLower(strings.TrimSpace(cat.Color))
		if color == "" {
			errs = errs.Append(prefix+".color", fmt.Errorf("color is required"))
			continue
		}
		if strings.ContainsAny(color, `;"<>`) {
			errs = errs.Append(prefix+".color", fmt.Errorf("invalid color %q", cat.Color))
			continue
		}
		if prev, ok := seen[color]; ok {
			errs = errs.Append(prefix+".color", fmt.Errorf("color %q already used by categories[%d]", cat.Color, prev))
			continue
		}
		seen[color] = i

		if strings.ContainsAny(cat.Style, `"<>`) {
			errs = errs.Append(prefix+".style", fmt.Errorf("style must not contain quotes or angle brackets"))
		}
	}

	return errs.ToError()
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

// field attaches err, if any, to the named field.
func field(name string, err error) error {
	if err == nil {
		return nil
	}
	return criterio.NewFieldErrors(name, err)
}

func durationWithin(d, lo, hi time.Duration) error {
	if d < lo || d > hi {
		return fmt.Errorf("must be between %s and %s, got %s", lo, hi, d)
	}
	return nil
}

func httpURL(s string) error {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func retries(n int) error {
	if n < 0 || n > maxRetries {
		return fmt.Errorf("must be between 0 and %d", maxRetries)
	}
	return nil
}

func theme(s string) error {
	if _, ok := styles.GetPalette(s); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", s, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
