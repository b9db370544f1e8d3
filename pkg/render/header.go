package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/mattn/go-runewidth"
)

// DefaultHeaderTemplate renders "--- Benchmark results "
const DefaultHeaderTemplate = "--- {{ .Title }} "

// HeaderData is what a header template can reference
type HeaderData struct {
	Title     string
	Reference string
	Rows      int
}

// Header executes tmpl (with sprig functions) against data
func Header(tmpl string, data HeaderData) (string, error) {
	if tmpl == "" {
		tmpl = DefaultHeaderTemplate
	}

	t, err := template.New("header").Funcs(sprig.TxtFuncMap()).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("invalid header template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render header template: %w", err)
	}
	return buf.String(), nil
}

// Separator pads title with dashes up to width display cells
func Separator(title string, width int) string {
	pad := width - runewidth.StringWidth(title)
	if pad <= 0 {
		return title
	}
	return title + strings.Repeat("-", pad)
}

// separatorLine renders the header for style, falling back to the default
// template when the configured one is broken
func separatorLine(style Style, data HeaderData) (string, error) {
	title, err := Header(style.HeaderTemplate, data)
	if err != nil {
		title, _ = Header(DefaultHeaderTemplate, data)
	}
	width := style.Width
	if width <= 0 {
		width = DefaultWidth
	}
	return style.Theme.Paint(style.Theme.Muted, Separator(title, width)), err
}
