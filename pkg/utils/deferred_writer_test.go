package utils

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferredWriter_BuffersUntilRelease(t *testing.T) {
	d := &DeferredWriter{}

	n, err := d.Write([]byte("config: "))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	_, _ = d.Write([]byte("warning\n"))
	assert.Equal(t, 16, d.Pending())

	var out bytes.Buffer
	require.NoError(t, d.Release(&out))
	assert.Equal(t, "config: warning\n", out.String())
	assert.Zero(t, d.Pending())
}

func TestDeferredWriter_PassthroughAfterRelease(t *testing.T) {
	d := &DeferredWriter{}

	var out bytes.Buffer
	require.NoError(t, d.Release(&out))

	_, err := d.Write([]byte("saved"))
	require.NoError(t, err)
	assert.Equal(t, "saved", out.String())
	assert.Zero(t, d.Pending())
}

func TestDeferredWriter_ConcurrentWrites(t *testing.T) {
	d := &DeferredWriter{}
	var wg sync.WaitGroup

	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = d.Write([]byte("x"))
		}()
	}
	wg.Wait()

	var out bytes.Buffer
	require.NoError(t, d.Release(&out))
	assert.Len(t, out.String(), 100)
}
