package main

import (
	"fmt"

	"github.com/fwojciec/symdex"
	"golang.org/x/net/html"
)

// Run executes the query command.
func (c *QueryCmd) Run(deps *Dependencies) error {
	set, err := findSet(deps, c.Name)
	if err != nil {
		return err
	}

	idx, err := deps.Entries.LoadIndex(deps.Ctx, set.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	var n int
	for ref := range idx.Query(c.Prefix) {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", ref.Label, displayOwner(ref.Owner), ref.URL)
		n++
		if c.Limit > 0 && n >= c.Limit {
			break
		}
	}

	if n == 0 {
		fmt.Fprintf(deps.Stderr, "No symbols match %q\n", c.Prefix)
	}
	return nil
}

// displayOwner decodes the HTML entities the generator writes into owners,
// e.g. "Ogre::SharedPtr&lt; T &gt;".
func displayOwner(owner string) string {
	return html.UnescapeString(owner)
}
