package symdex

// Member is the documentation block of a single API member on a generated page.
type Member struct {
	// Anchor is the fragment identifier the block was located by.
	Anchor string

	// Title is the member heading, e.g. "needUpdate()".
	Title string

	// ContentHTML holds the declaration and description of the member.
	ContentHTML string
}

// MemberExtractor locates a member's documentation block within a page.
type MemberExtractor interface {
	// Extract returns the block identified by anchor.
	// Returns ENOTFOUND if the page has no such anchor.
	Extract(html string, anchor string) (*Member, error)
}
