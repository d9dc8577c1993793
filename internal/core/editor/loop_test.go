package editor_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/rxmark/internal/core/editor"
	"github.com/colonyops/rxmark/internal/core/markup"
)

func TestLoop_RunsInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := editor.NewLoop(0)
	go loop.Run(ctx)

	var got []int
	for i := range 5 {
		loop.Post(func() { got = append(got, i) })
	}
	require.NoError(t, loop.Do(ctx, func() {}))

	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestLoop_DoAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loop := editor.NewLoop(1)

	stopped := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	err := loop.Do(context.Background(), func() {})
	require.ErrorIs(t, err, context.Canceled)

	// Post after stop must not block even with a full queue.
	loop.Post(func() {})
	loop.Post(func() {})
}

// End to end over a real loop and real timers.
func TestLoop_DrivesController(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := editor.NewLoop(0)
	go loop.Run(ctx)

	palette, _ := markup.Preset(markup.PaletteSingle)
	ready := make(chan struct{}, 1)
	ctrl := editor.New(editor.Options{
		Palette: palette,
		Poster:  loop,
		Logger:  zerolog.Nop(),
		OnEvent: func(e editor.Event) {
			if e.Kind == editor.EventReady {
				ready <- struct{}{}
			}
		},
	})

	require.NoError(t, loop.Do(ctx, func() { ctrl.Open("plain text") }))
	<-ready

	var out string
	var err error
	require.NoError(t, loop.Do(ctx, func() { out, err = ctrl.Save() }))
	require.NoError(t, err)
	assert.Equal(t, "plain text", out)
}
