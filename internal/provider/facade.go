package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	_ Source      = (*SourceFacade)(nil)
	_ Invalidator = (*SourceFacade)(nil)
)

// SourceFacade is an abstraction that calls sources sequentially.
type SourceFacade struct {
	sources []Source
}

// NewSourceFacade creates a new SourceFacade with the given list of sources.
func NewSourceFacade(sources ...Source) *SourceFacade {
	return &SourceFacade{
		sources: sources,
	}
}

// Name joins the names of the wrapped sources.
func (p *SourceFacade) Name() string {
	names := make([]string, 0, len(p.sources))
	for _, s := range p.sources {
		names = append(names, s.Name())
	}
	return strings.Join(names, ",")
}

// Fetch calls sources sequentially until one succeeds.
func (p *SourceFacade) Fetch(ctx context.Context) ([]byte, error) {
	var errs []error
	for _, src := range p.sources {
		data, err := src.Fetch(ctx)
		if err == nil {
			return data, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
	}

	return nil, fmt.Errorf("all sources failed: %w", errors.Join(errs...))
}

// Invalidate drops the cached copy held by every wrapped source that keeps one.
func (p *SourceFacade) Invalidate(ctx context.Context) error {
	var errs []error
	for _, src := range p.sources {
		inv, ok := src.(Invalidator)
		if !ok {
			continue
		}
		if err := inv.Invalidate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
		}
	}
	return errors.Join(errs...)
}
