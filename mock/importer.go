package mock

import (
	"context"

	"github.com/fwojciec/symdex"
)

var _ symdex.Importer = (*Importer)(nil)

// Importer is a mock implementation of symdex.Importer.
type Importer struct {
	ImportFn func(ctx context.Context, req symdex.ImportRequest) (*symdex.ImportResult, error)
}

func (i *Importer) Import(ctx context.Context, req symdex.ImportRequest) (*symdex.ImportResult, error) {
	return i.ImportFn(ctx, req)
}
