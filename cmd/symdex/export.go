package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/fs"
	"github.com/fwojciec/symdex/searchdata"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	if c.Output != "" && c.Dir != "" {
		fmt.Fprintf(deps.Stderr, "error: --output and --dir are mutually exclusive\n")
		return symdex.Errorf(symdex.EINVALID, "--output and --dir are mutually exclusive")
	}

	set, err := findSet(deps, c.Name)
	if err != nil {
		return err
	}

	idx, err := deps.Entries.LoadIndex(deps.Ctx, set.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	switch {
	case c.Dir != "":
		w := fs.NewWriter(filepath.Dir(c.Dir), filepath.Base(c.Dir))
		m, err := w.WriteIndex(deps.Ctx, idx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d entries in %d files to %s\n", idx.Len(), len(m.Sections[0].Files()), w.Dir())
		return nil

	case c.Output != "":
		f, err := os.Create(c.Output)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		if err := searchdata.EncodeIndex(f, idx); err != nil {
			_ = f.Close()
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		if err := f.Close(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d entries to %s\n", idx.Len(), c.Output)
		return nil
	}

	if err := searchdata.EncodeIndex(deps.Stdout, idx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
