// Package htmltomarkdown renders Doxygen documentation blocks as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/symdex"
)

// Ensure Converter implements symdex.Converter at compile time.
var _ symdex.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv    *converter.Converter
	baseURL string
}

// Option configures a Converter.
type Option func(*Converter)

// WithBaseURL resolves relative links, such as references to other members,
// against the page the HTML came from.
func WithBaseURL(u string) Option {
	return func(c *Converter) {
		c.baseURL = u
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", symdex.Errorf(symdex.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if c.baseURL != "" {
		opts = append(opts, converter.WithDomain(c.baseURL))
	}
	result, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}
