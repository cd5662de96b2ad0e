package source

import (
	"context"
	"fmt"

	"github.com/matzehuels/cloudweights/pkg/cloud"
)

// Static serves counts from an in-memory [Catalog].
// Fetch never suspends beyond checking ctx, but it honors the same contract
// as the network-backed sources.
type Static struct {
	catalog *Catalog
}

// NewStatic creates a static source over catalog.
// A nil catalog means the compiled-in [Reference] catalog.
func NewStatic(catalog *Catalog) *Static {
	if catalog == nil {
		catalog = Reference()
	}
	return &Static{catalog: catalog}
}

// Fetch returns the catalog's counts for corpus in catalog order, or
// [ErrNotFound] if the catalog has no such corpus.
func (s *Static) Fetch(ctx context.Context, corpus string) ([]cloud.RawCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	counts, ok := s.catalog.Lookup(corpus)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, corpus)
	}
	return counts, nil
}

// Corpora lists the catalog's corpus identifiers.
func (s *Static) Corpora(ctx context.Context) ([]string, error) {
	return s.catalog.Corpora(), nil
}

// Catalog returns the backing catalog.
func (s *Static) Catalog() *Catalog { return s.catalog }

var (
	_ Source = (*Static)(nil)
	_ Lister = (*Static)(nil)
)
