// Package provider loads the published exchange-rate document from external
// sources and decodes it into a rates.Document.
package provider

import (
	"context"
)

// Source defines an interface for fetching the raw rate document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// Invalidator is implemented by sources that keep a cached copy of the document.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}
