package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/fetch"
	"github.com/fwojciec/symdex/searchdata"
	"github.com/fwojciec/symdex/tagfile"
)

// Run executes the load command.
func (c *LoadCmd) Run(deps *Dependencies) error {
	var raws []string
	var files [][]*symdex.Entry
	for _, path := range c.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}

		entries, err := c.decode(path, string(data))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
			return err
		}
		raws = append(raws, string(data))
		files = append(files, entries)
	}

	entries := fetch.Merge(files...)
	hash := fetch.ComputeHash(raws...)

	source := c.BaseURL
	if source == "" {
		abs, err := filepath.Abs(c.Files[0])
		if err != nil {
			abs = c.Files[0]
		}
		source = abs
	}

	set, created, err := upsertSet(deps, c.Name, source)
	if err != nil {
		return err
	}
	if !created && set.ContentHash == hash {
		fmt.Fprintf(deps.Stdout, "Set %q is up to date (%d entries)\n", c.Name, len(entries))
		return nil
	}

	if err := deps.Entries.ReplaceEntries(deps.Ctx, set.ID, entries); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}
	if _, err := deps.Sets.UpdateSet(deps.Ctx, set.ID, symdex.SetUpdate{ContentHash: &hash}); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	var refs int
	for _, e := range entries {
		refs += len(e.References)
	}
	fmt.Fprintf(deps.Stdout, "Loaded set %q: %d entries, %d references from %d files\n",
		c.Name, len(entries), refs, len(c.Files))
	return nil
}

func (c *LoadCmd) decode(path, data string) ([]*symdex.Entry, error) {
	if strings.EqualFold(filepath.Ext(path), ".tag") {
		entries, err := tagfile.Decode(strings.NewReader(data), c.BaseURL)
		var pe *symdex.ParseError
		if errors.As(err, &pe) {
			pe.Source = path
		}
		return entries, err
	}
	return searchdata.Decode(strings.NewReader(data), searchdata.WithSource(path))
}

// upsertSet returns the named set, creating it with source when missing.
func upsertSet(deps *Dependencies, name, source string) (*symdex.Set, bool, error) {
	sets, err := deps.Sets.FindSets(deps.Ctx, symdex.SetFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return nil, false, err
	}
	if len(sets) > 0 {
		set, err := deps.Sets.UpdateSet(deps.Ctx, sets[0].ID, symdex.SetUpdate{SourceURL: &source})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
			return nil, false, err
		}
		return set, false, nil
	}

	set := &symdex.Set{Name: name, SourceURL: source}
	if err := deps.Sets.CreateSet(deps.Ctx, set); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return nil, false, err
	}
	return set, true, nil
}
