package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter holds output back while something else owns the terminal.
// Writes are buffered until Release, which flushes the buffer to w and sends
// every later write straight through. Safe for concurrent use.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
	out io.Writer
}

// Write buffers p, or forwards it once the writer has been released.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.out != nil {
		return d.out.Write(p)
	}
	return d.buf.Write(p)
}

// Pending returns the number of buffered bytes.
func (d *DeferredWriter) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len()
}

// Release writes the buffered output to w and switches to passthrough.
// Calling it again redirects passthrough to the new writer.
func (d *DeferredWriter) Release(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.out = w
	if d.buf.Len() == 0 {
		return nil
	}
	_, err := d.buf.WriteTo(w)
	return err
}
