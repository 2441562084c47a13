package symdex

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as a member's documentation
	// block, into Markdown.
	Convert(html string) (string, error)
}

// Renderer formats Markdown for display, e.g. with terminal styling.
type Renderer interface {
	Render(markdown string) (string, error)
}
