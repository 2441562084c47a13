package mock

import (
	"context"

	"github.com/fwojciec/symdex"
)

var _ symdex.SetService = (*SetService)(nil)

// SetService is a mock implementation of symdex.SetService.
type SetService struct {
	CreateSetFn   func(ctx context.Context, set *symdex.Set) error
	FindSetByIDFn func(ctx context.Context, id string) (*symdex.Set, error)
	FindSetsFn    func(ctx context.Context, filter symdex.SetFilter) ([]*symdex.Set, error)
	UpdateSetFn   func(ctx context.Context, id string, upd symdex.SetUpdate) (*symdex.Set, error)
	DeleteSetFn   func(ctx context.Context, id string) error
}

func (s *SetService) CreateSet(ctx context.Context, set *symdex.Set) error {
	return s.CreateSetFn(ctx, set)
}

func (s *SetService) FindSetByID(ctx context.Context, id string) (*symdex.Set, error) {
	return s.FindSetByIDFn(ctx, id)
}

func (s *SetService) FindSets(ctx context.Context, filter symdex.SetFilter) ([]*symdex.Set, error) {
	return s.FindSetsFn(ctx, filter)
}

func (s *SetService) UpdateSet(ctx context.Context, id string, upd symdex.SetUpdate) (*symdex.Set, error) {
	return s.UpdateSetFn(ctx, id, upd)
}

func (s *SetService) DeleteSet(ctx context.Context, id string) error {
	return s.DeleteSetFn(ctx, id)
}

var _ symdex.EntryService = (*EntryService)(nil)

// EntryService is a mock implementation of symdex.EntryService.
type EntryService struct {
	ReplaceEntriesFn func(ctx context.Context, setID string, entries []*symdex.Entry) error
	FindEntriesFn    func(ctx context.Context, filter symdex.EntryFilter) ([]*symdex.Entry, error)
	LoadIndexFn      func(ctx context.Context, setID string) (*symdex.Index, error)
}

func (s *EntryService) ReplaceEntries(ctx context.Context, setID string, entries []*symdex.Entry) error {
	return s.ReplaceEntriesFn(ctx, setID, entries)
}

func (s *EntryService) FindEntries(ctx context.Context, filter symdex.EntryFilter) ([]*symdex.Entry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *EntryService) LoadIndex(ctx context.Context, setID string) (*symdex.Index, error) {
	return s.LoadIndexFn(ctx, setID)
}
