package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHTML(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		markup   string
		contains []string
	}{
		{
			name:   "highlight and line breaks",
			title:  "Weekly report",
			markup: "Line one\n" + `<span style="background-color: yellow;">Aspirin</span>`,
			contains: []string{
				"<title>Weekly report</title>",
				"<h1>Weekly report</h1>",
				`Line one<br><span style="background-color: yellow;">Aspirin</span>`,
			},
		},
		{
			name:     "default title",
			markup:   "x",
			contains: []string{"<title>" + DefaultTitle + "</title>"},
		},
		{
			name:     "title is escaped",
			title:    "<b>&",
			markup:   "x",
			contains: []string{"<title>&lt;b&gt;&amp;</title>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, ExportHTML(&buf, tt.title, tt.markup))

			out := buf.String()
			assert.Contains(t, out, "<!DOCTYPE html>")
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}
