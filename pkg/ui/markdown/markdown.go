// Package markdown renders tool output for display in a terminal
package markdown

import (
	"io"
	"strings"

	// Packages
	glamour "github.com/charmbracelet/glamour"
	termenv "github.com/muesli/termenv"
	table "github.com/mutablelogic/go-paprika/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Renderer struct {
	r *glamour.TermRenderer
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"

	defaultWidth = 80
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a renderer with a named glamour style, wrapping at width
// columns. A width of zero wraps at eighty columns.
func New(style string, width int) (*Renderer, error) {
	if width <= 0 {
		width = defaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{r: r}, nil
}

// NewWriter returns a renderer suited to w. Terminals get a style matching
// the background and are wrapped to the terminal width. Anything else gets
// a nil renderer, which passes text through unchanged.
func NewWriter(w io.Writer) (*Renderer, error) {
	width := table.Width(w)
	if width == 0 {
		return nil, nil
	}
	style := StyleDark
	if !termenv.HasDarkBackground() {
		style = StyleLight
	}
	return New(style, width)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Render returns the text as styled markdown. A nil renderer returns the
// text as-is.
func (r *Renderer) Render(text string) (string, error) {
	if r == nil {
		return text, nil
	}
	out, err := r.r.Render(text)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
