package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/rxmark/pkg/tuitest"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(context.Background(), New(&buf))

	p := Ctx(ctx)
	p.Successf("saved %s", "report.html")
	p.Warnf("%d warning", 1)
	p.Errorf("failed")
	p.Printf("  detail")

	assert.Equal(t, "✔ saved report.html\n! 1 warning\n✘ failed\n  detail", tuitest.StripANSI(buf.String()))
}

func TestCtx_Default(t *testing.T) {
	assert.NotNil(t, Ctx(context.Background()))
}
