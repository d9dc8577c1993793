package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/rxmark/internal/core/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCollectErrors(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, collectErrors(nil))
	})

	t.Run("plain error", func(t *testing.T) {
		got := collectErrors(errors.New("boom"))
		assert.Equal(t, []validationError{{Field: "config", Message: "boom"}}, got)
	})

	t.Run("field errors", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DataDir = t.TempDir()
		cfg.DoubleClickWindow = time.Hour
		cfg.Search.Retries = -1

		got := collectErrors(cfg.Validate())

		fields := make([]string, 0, len(got))
		for _, e := range got {
			fields = append(fields, e.Field)
		}
		assert.ElementsMatch(t, []string{"double_click_window", "search.retries"}, fields)
	})
}
