// Package report holds the report text an edit session reads from and writes
// back to, and renders it for export.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned by FileHolder.Report when the report file does not exist.
var ErrNotFound = errors.New("report not found")

// Holder owns the current report markup.
type Holder interface {
	Report() (string, error)
	SetReport(markup string) error
}

// MemoryHolder keeps the report in memory.
type MemoryHolder struct {
	mu     sync.RWMutex
	markup string
}

// NewMemoryHolder returns a holder seeded with markup.
func NewMemoryHolder(markup string) *MemoryHolder {
	return &MemoryHolder{markup: markup}
}

// Report returns the held markup.
func (h *MemoryHolder) Report() (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.markup, nil
}

// SetReport replaces the held markup.
func (h *MemoryHolder) SetReport(markup string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.markup = markup
	return nil
}

// FileHolder persists the report as a file on disk.
type FileHolder struct {
	path string
	mu   sync.RWMutex
}

// NewFileHolder creates a holder backed by the file at path.
func NewFileHolder(path string) *FileHolder {
	return &FileHolder{path: path}
}

// Path returns the backing file path.
func (h *FileHolder) Path() string {
	return h.path
}

// Report reads the report file. Returns ErrNotFound if it doesn't exist.
func (h *FileHolder) Report() (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := os.ReadFile(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", h.path, ErrNotFound)
		}
		return "", err
	}
	return string(data), nil
}

// SetReport writes the report file atomically.
func (h *FileHolder) SetReport(markup string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}

	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(markup), 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, h.path)
}
