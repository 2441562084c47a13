package symdex

import (
	"context"
	"time"
)

// Set is a named, persisted symbol index, typically one documentation site.
type Set struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SourceURL string `json:"sourceUrl"`

	// ContentHash fingerprints the raw data files the set was built from.
	// Re-importing identical content is skipped.
	ContentHash string `json:"contentHash"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the set contains invalid fields.
func (s *Set) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "set name required")
	}
	return nil
}

// SetService represents a service for managing sets.
type SetService interface {
	// CreateSet creates a new set.
	// Returns ECONFLICT if a set with the same name exists.
	CreateSet(ctx context.Context, set *Set) error

	// FindSetByID retrieves a set by ID.
	// Returns ENOTFOUND if set does not exist.
	FindSetByID(ctx context.Context, id string) (*Set, error)

	// FindSets retrieves sets matching the filter.
	FindSets(ctx context.Context, filter SetFilter) ([]*Set, error)

	// UpdateSet updates an existing set.
	// Returns ENOTFOUND if set does not exist.
	UpdateSet(ctx context.Context, id string, upd SetUpdate) (*Set, error)

	// DeleteSet permanently removes a set and all of its entries.
	// Returns ENOTFOUND if set does not exist.
	DeleteSet(ctx context.Context, id string) error
}

// SetFilter represents a filter for FindSets.
type SetFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SetUpdate represents fields that can be updated on a set.
type SetUpdate struct {
	Name        *string `json:"name"`
	SourceURL   *string `json:"sourceUrl"`
	ContentHash *string `json:"contentHash"`
}

// EntryService stores the entries of a set.
type EntryService interface {
	// ReplaceEntries atomically swaps all entries of a set for entries.
	// Indexes are regenerated wholesale, so there is no partial update.
	ReplaceEntries(ctx context.Context, setID string, entries []*Entry) error

	// FindEntries retrieves entries matching the filter, in table order.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)

	// LoadIndex reads every entry of a set into an in-memory Index.
	LoadIndex(ctx context.Context, setID string) (*Index, error)
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	SetID string `json:"setId"`

	// Prefix is a case-insensitive symbol prefix. It is normalized with
	// NormalizeKey before matching.
	Prefix string `json:"prefix"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
