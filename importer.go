package symdex

import "context"

// ImportRequest names a set and the search directory to build it from.
type ImportRequest struct {
	// Name of the set to create or refresh.
	Name string

	// URL of the search directory, e.g. "https://ogrecave.org/docs/search/".
	// A URL naming a single data file is imported as that file alone.
	URL string

	// Sections to import. Defaults to SectionAll, which already holds every
	// symbol the other sections list.
	Sections []string
}

// ImportResult summarizes an import.
type ImportResult struct {
	Set *Set

	Files      int
	Entries    int
	References int

	// Created is set when the import created the set.
	Created bool

	// Unchanged is set when the fetched data matched the stored content hash
	// and nothing was written.
	Unchanged bool
}

// Importer builds sets from published search data.
type Importer interface {
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
}
