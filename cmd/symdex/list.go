package main

import (
	"fmt"

	"github.com/fwojciec/symdex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	sets, err := deps.Sets.FindSets(deps.Ctx, symdex.SetFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	if len(sets) == 0 {
		fmt.Fprintln(deps.Stdout, "No sets found. Use 'symdex import' or 'symdex load' to create one.")
		return nil
	}

	for _, s := range sets {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", s.ID, s.Name, s.SourceURL, s.UpdatedAt.Format("2006-01-02"))
	}
	return nil
}
