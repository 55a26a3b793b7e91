package provider

import (
	"context"
	"fmt"
	"os"
)

var _ Source = (*FileSource)(nil)

// FileSource reads a locally stored copy of the rate document.
type FileSource struct {
	path string
}

// NewFileSource creates a new FileSource for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name identifies the source in logs and cache keys.
func (p *FileSource) Name() string { return "file" }

// Fetch reads the whole file.
func (p *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read rate document %s: %w", p.path, err)
	}
	return data, nil
}
