package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/searchdata"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer f.Close()

	idx, err := searchdata.Load(f, searchdata.WithSource(c.File))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s: %d entries, %d references\n", c.File, idx.Len(), idx.ReferenceCount())

	// The generator applies punctuation rules of its own, so a mismatch is
	// reported rather than treated as an error.
	var mismatches int
	for _, e := range idx.Entries() {
		if want := symdex.NormalizeKey(e.Label); want != e.Key {
			fmt.Fprintf(deps.Stdout, "  key %q differs from normalized label %q (%s)\n", e.Key, want, e.Label)
			mismatches++
		}
	}
	if mismatches > 0 {
		fmt.Fprintf(deps.Stdout, "%d keys differ from their normalized label\n", mismatches)
	}
	return nil
}
