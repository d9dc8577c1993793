package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/rxmark/pkg/tuitest"
)

func TestNotices_PushEvictsOldest(t *testing.T) {
	var n Notices
	for _, msg := range []string{"a", "b", "c", "d"} {
		n.Push(levelInfo, msg)
	}

	assert.Equal(t, defaultMaxNotices, n.Len())
	assert.Equal(t, "b", n.items[0].message)
}

func TestNotices_TickExpires(t *testing.T) {
	var n Notices
	n.Push(levelWarning, "old")
	n.Tick(defaultNoticeTTL / 2)
	n.Push(levelError, "new")

	n.Tick(defaultNoticeTTL / 2)

	assert.Equal(t, 1, n.Len())
	assert.Equal(t, "new", n.items[0].message)
}

func TestNotices_View(t *testing.T) {
	var n Notices
	assert.Empty(t, n.View())

	n.Push(levelInfo, "saved report")
	assert.Contains(t, tuitest.StripANSI(n.View()), "saved report")

	n.Tick(time.Hour)
	assert.Equal(t, "bg", n.Overlay("bg", 80, 24))
}
