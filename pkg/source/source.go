package source

import (
	"context"
	"errors"
	"io"

	"github.com/matzehuels/cloudweights/pkg/cloud"
)

var (
	// ErrNotFound is returned when the corpus identifier is not known to the source.
	ErrNotFound = errors.New("corpus not found")

	// ErrUnavailable is returned when the source cannot be reached or its
	// response cannot be decoded into a count table.
	ErrUnavailable = errors.New("source unavailable")
)

// Source resolves a corpus identifier to raw counts.
//
// Fetch blocks until the lookup completes or ctx is done. Implementations
// must be safe for concurrent use; concurrent calls are independent.
type Source interface {
	Fetch(ctx context.Context, corpus string) ([]cloud.RawCount, error)
}

// Lister is implemented by sources that can enumerate their corpora.
type Lister interface {
	Corpora(ctx context.Context) ([]string, error)
}

// Close releases resources held by src if it implements io.Closer.
func Close(src Source) error {
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
