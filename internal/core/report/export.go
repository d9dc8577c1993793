package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

// DefaultTitle is used when ExportHTML is called without a title.
const DefaultTitle = "Medical report"

//go:embed export.html.tmpl
var exportSource string

var exportTmpl = template.Must(template.New("export").Parse(exportSource))

type exportData struct {
	Title string
	Body  template.HTML
}

// ExportHTML writes a standalone HTML document containing the report. The
// markup is trusted (it was produced by the serializer) and is embedded
// unescaped, with newlines turned into <br> line breaks.
func ExportHTML(w io.Writer, title, markup string) error {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}

	data := exportData{
		Title: title,
		Body:  template.HTML(strings.ReplaceAll(markup, "\n", "<br>")), //nolint:gosec
	}

	if err := exportTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render export: %w", err)
	}
	return nil
}
