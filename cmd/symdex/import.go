package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/symdex"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	source := c.URL
	if isPage(source) {
		searchURL, err := c.discoverSearch(deps)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "  Search index at %s\n", searchURL)
		source = searchURL
	}

	result, err := deps.Importer.Import(deps.Ctx, symdex.ImportRequest{
		Name:     c.Name,
		URL:      source,
		Sections: c.Section,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	if result.Unchanged {
		fmt.Fprintf(deps.Stdout, "Set %q is up to date (%d entries)\n", c.Name, result.Entries)
		return nil
	}

	verb := "Updated"
	if result.Created {
		verb = "Imported"
	}
	fmt.Fprintf(deps.Stdout, "%s set %q: %d entries, %d references from %d files\n",
		verb, c.Name, result.Entries, result.References, result.Files)
	return nil
}

// discoverSearch reads a documentation page and returns the search
// directory it loads its index from.
func (c *ImportCmd) discoverSearch(deps *Dependencies) (string, error) {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return "", err
	}

	site := deps.Detector.Detect(html, c.URL)
	if site.Generator != symdex.GeneratorDoxygen {
		fmt.Fprintf(deps.Stderr, "error: %s does not look like a Doxygen page\n", c.URL)
		return "", symdex.Errorf(symdex.EINVALID, "%s is not a Doxygen page", c.URL)
	}
	if site.SearchURL == "" {
		fmt.Fprintf(deps.Stderr, "error: %s has no search index (was SEARCHENGINE disabled?)\n", c.URL)
		return "", symdex.Errorf(symdex.ENOTFOUND, "%s has no search index", c.URL)
	}
	return site.SearchURL, nil
}

// isPage reports whether u names an HTML page rather than search data.
func isPage(u string) bool {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return strings.HasSuffix(u, ".html") || strings.HasSuffix(u, ".htm")
}
