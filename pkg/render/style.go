// Package render turns benchmark reports into text, JSON or YAML. Every
// function here is a pure function of already collected data; measuring
// happens in pkg/bench.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Format selects the output encoding
type Format string

// Supported formats
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name, defaulting to text
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return FormatText, fmt.Errorf("unsupported format: %s", s)
	}
}

// ColorMode controls when output is colored
type ColorMode string

// Supported color modes
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a color mode name, defaulting to auto
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return m, nil
	default:
		return ColorAuto, fmt.Errorf("unsupported color mode: %s", s)
	}
}

// ColorEnabled decides whether to color output written to w.
//
// In auto mode color is disabled when any of:
//   - NO_COLOR is set (any value)
//   - CLICOLOR=0
//   - TERM=dumb
//   - w is not a terminal
func ColorEnabled(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" || os.Getenv("TERM") == "dumb" {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DefaultWidth is the separator width when the output is not a terminal
const DefaultWidth = 40

// TermWidth returns the terminal width behind w, or DefaultWidth
func TermWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 { //nolint:gosec // fd fits int
			return width
		}
	}
	return DefaultWidth
}

// Theme holds the lipgloss styles used for report cells. A disabled theme
// returns text untouched.
type Theme struct {
	enabled bool

	Header    lipgloss.Style
	Muted     lipgloss.Style
	Count     lipgloss.Style
	Success   lipgloss.Style
	Failure   lipgloss.Style
	Time      lipgloss.Style
	TimeAlt   lipgloss.Style
	Speed     lipgloss.Style
	Highlight lipgloss.Style
}

// NewTheme creates a theme bound to w. When color is false no ANSI codes are
// ever emitted.
func NewTheme(w io.Writer, color bool) Theme {
	if !color {
		return Theme{}
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)

	return Theme{
		enabled:   true,
		Header:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Muted:     r.NewStyle().Foreground(lipgloss.Color("8")),
		Count:     r.NewStyle().Foreground(lipgloss.Color("13")),
		Success:   r.NewStyle().Foreground(lipgloss.Color("10")),
		Failure:   r.NewStyle().Foreground(lipgloss.Color("9")),
		Time:      r.NewStyle().Foreground(lipgloss.Color("12")),
		TimeAlt:   r.NewStyle().Foreground(lipgloss.Color("6")),
		Speed:     r.NewStyle().Foreground(lipgloss.Color("11")),
		Highlight: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	}
}

// Enabled reports whether the theme colors text
func (t Theme) Enabled() bool {
	return t.enabled
}

// Paint applies s when the theme is enabled
func (t Theme) Paint(s lipgloss.Style, text string) string {
	if !t.enabled || text == "" {
		return text
	}
	return s.Render(text)
}

// Style gathers the presentation settings for one output
type Style struct {
	Theme Theme
	// Grouping separates thousands in counts and throughput
	Grouping string
	// HeaderTemplate renders the title of the separator line
	HeaderTemplate string
	// Width of the separator line; 0 means DefaultWidth
	Width  int
	Format Format
}

// DefaultStyle is plain text with "_" grouping
func DefaultStyle() Style {
	return Style{
		Grouping:       "_",
		HeaderTemplate: DefaultHeaderTemplate,
		Width:          DefaultWidth,
		Format:         FormatText,
	}
}
