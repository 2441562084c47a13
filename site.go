package symdex

// Generator identifies the documentation tool that produced a site.
type Generator string

// Generator constants.
const (
	GeneratorUnknown Generator = ""
	GeneratorDoxygen Generator = "doxygen"
)

// Site describes what was learned about a documentation page.
type Site struct {
	Generator Generator

	// Version is the generator version from the page metadata, if present.
	Version string

	// SearchURL is the absolute URL of the directory holding the search
	// data files, ending with a slash. Empty when the page has no search.
	SearchURL string
}

// SiteDetector inspects documentation HTML.
type SiteDetector interface {
	// Detect analyzes the HTML of pageURL. Relative script references are
	// resolved against pageURL.
	Detect(html string, pageURL string) Site
}
