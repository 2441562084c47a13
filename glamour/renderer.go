// Package glamour renders Markdown for the terminal using charmbracelet/glamour.
package glamour

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/fwojciec/symdex"
)

// DefaultWordWrap is the column rendered output wraps at.
const DefaultWordWrap = 80

var _ symdex.Renderer = (*Renderer)(nil)

// Renderer styles Markdown with ANSI escapes.
type Renderer struct {
	tr *glamour.TermRenderer
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	style string
	wrap  int
}

// WithStyle selects a built-in glamour style such as "dark", "light" or
// "notty". By default the style follows the terminal background.
func WithStyle(style string) Option {
	return func(o *options) {
		o.style = style
	}
}

// WithWordWrap sets the wrap column. Zero disables wrapping.
func WithWordWrap(n int) Option {
	return func(o *options) {
		o.wrap = n
	}
}

// NewRenderer returns a Renderer.
func NewRenderer(opts ...Option) (*Renderer, error) {
	o := options{wrap: DefaultWordWrap}
	for _, opt := range opts {
		opt(&o)
	}

	style := glamour.WithAutoStyle()
	if o.style != "" {
		style = glamour.WithStandardStyle(o.style)
	}
	tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(o.wrap))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return &Renderer{tr: tr}, nil
}

// Render returns markdown styled for display.
func (r *Renderer) Render(markdown string) (string, error) {
	out, err := r.tr.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
