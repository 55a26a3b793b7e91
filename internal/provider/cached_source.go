package provider

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedSourceDecorator wraps a Source with Redis caching of the raw document.
type CachedSourceDecorator struct {
	source Source
	cache  *redis.Client
	ttl    time.Duration
}

// NewCachedSource creates a new CachedSourceDecorator.
func NewCachedSource(source Source, cache *redis.Client, ttl time.Duration) *CachedSourceDecorator {
	return &CachedSourceDecorator{
		source: source,
		cache:  cache,
		ttl:    ttl,
	}
}

func (p *CachedSourceDecorator) cacheKey() string {
	return "source_cache:{" + p.source.Name() + "}"
}

// Name returns the wrapped source's name.
func (p *CachedSourceDecorator) Name() string { return p.source.Name() }

// Fetch returns the cached document if present, otherwise fetches it from the
// wrapped source and stores it for ttl. Failed fetches and bodies that are
// not rate documents are not cached.
func (p *CachedSourceDecorator) Fetch(ctx context.Context) ([]byte, error) {
	if p.cache == nil {
		return p.source.Fetch(ctx)
	}

	key := p.cacheKey()
	if data, err := p.cache.Get(ctx, key).Bytes(); err == nil && CheckDocument(data) == nil {
		return data, nil
	}

	data, err := p.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := CheckDocument(data); err != nil {
		return nil, err
	}

	_ = p.cache.Set(ctx, key, data, p.ttl).Err()
	return data, nil
}

// Invalidate drops the cached document so the next Fetch goes to the source.
func (p *CachedSourceDecorator) Invalidate(ctx context.Context) error {
	if p.cache == nil {
		return nil
	}
	return p.cache.Del(ctx, p.cacheKey()).Err()
}

var (
	_ Source      = (*CachedSourceDecorator)(nil)
	_ Invalidator = (*CachedSourceDecorator)(nil)
)
