package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Sets     symdex.SetService
	Entries  symdex.EntryService
	Fetcher  symdex.Fetcher
	Importer symdex.Importer
	Detector symdex.SiteDetector
	Members  symdex.MemberExtractor
	Renderer symdex.Renderer

	// NewConverter returns a Markdown converter resolving links against
	// baseURL.
	NewConverter func(baseURL string) symdex.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetches and imports to stderr"`

	Import ImportCmd `cmd:"" help:"Import a set from a documentation site or search directory"`
	Load   LoadCmd   `cmd:"" help:"Load local data files or a tag file into a set"`
	List   ListCmd   `cmd:"" help:"List all sets"`
	Delete DeleteCmd `cmd:"" help:"Delete a set and its entries"`
	Query  QueryCmd  `cmd:"" help:"Print references whose symbol starts with a prefix"`
	Export ExportCmd `cmd:"" help:"Write a set back in search data format"`
	Check  CheckCmd  `cmd:"" help:"Validate a search data file"`
	Show   ShowCmd   `cmd:"" help:"Print the documentation of a symbol as Markdown"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Name        string   `arg:"" help:"Set name"`
	URL         string   `arg:"" help:"Search directory, data file or documentation page (URL or path)"`
	Section     []string `short:"s" help:"Search section to import (repeatable, default all)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"2" help:"Requests per second per host (0 for no limit)"`
}

// LoadCmd is the "load" subcommand.
type LoadCmd struct {
	Name    string   `arg:"" help:"Set name"`
	Files   []string `arg:"" type:"existingfile" help:"Data files (.js) or Doxygen tag files (.tag)"`
	BaseURL string   `name:"base-url" help:"Where the files are published: the search directory URL for data files, the documentation root for tag files"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Set name"`
	Force bool   `help:"Confirm deletion"`
}

// QueryCmd is the "query" subcommand.
type QueryCmd struct {
	Name   string `arg:"" help:"Set name"`
	Prefix string `arg:"" help:"Case-insensitive symbol prefix"`
	Limit  int    `short:"n" help:"Maximum number of references to print (0 for all)"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name   string `arg:"" help:"Set name"`
	Output string `short:"o" help:"Write a single data file to this path instead of stdout"`
	Dir    string `help:"Write a search directory (manifest and per-letter files) to this path"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	File string `arg:"" type:"existingfile" help:"Data file to validate"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name   string `arg:"" help:"Set name"`
	Key    string `arg:"" help:"Symbol name"`
	Ref    int    `default:"0" help:"Index of the reference to show when a symbol has several"`
	Base   string `help:"URL relative links resolve against (default: the set's search directory or source directory)"`
	Render bool   `help:"Style the Markdown for the terminal"`
	Style  string `help:"Render style (dark, light, notty...; default follows the terminal)"`
}

// findSet returns the set with the given name, printing a hint when it
// does not exist.
func findSet(deps *Dependencies, name string) (*symdex.Set, error) {
	sets, err := deps.Sets.FindSets(deps.Ctx, symdex.SetFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return nil, err
	}
	if len(sets) == 0 {
		fmt.Fprintf(deps.Stderr, "error: set %q not found. Use 'symdex list' to see available sets.\n", name)
		return nil, symdex.Errorf(symdex.ENOTFOUND, "set %q not found", name)
	}
	return sets[0], nil
}
