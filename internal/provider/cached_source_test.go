package provider

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCachedSource_Fetch(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	doc := []byte(sampleXML)
	ttl := 10 * time.Second

	t.Run("cache miss then hit", func(t *testing.T) {
		mr.FlushAll()
		src := &MockSource{name: "bsi"}
		src.On("Fetch", mock.Anything).Return(doc, nil).Once()

		cached := NewCachedSource(src, rdb, ttl)

		// First call - cache miss
		got, err := cached.Fetch(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, doc, got)
		src.AssertExpectations(t)
		assert.True(t, mr.Exists("source_cache:{bsi}"))

		// Second call - served from cache, the mock allows a single call only
		got2, err := cached.Fetch(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, doc, got2)
	})

	t.Run("source error is not cached", func(t *testing.T) {
		mr.FlushAll()
		src := &MockSource{name: "bsi"}
		src.On("Fetch", mock.Anything).Return(nil, assert.AnError).Once()

		cached := NewCachedSource(src, rdb, ttl)

		_, err := cached.Fetch(context.Background())
		assert.Error(t, err)
		assert.False(t, mr.Exists("source_cache:{bsi}"))

		src.On("Fetch", mock.Anything).Return(doc, nil).Once()
		got, err := cached.Fetch(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, doc, got)
		src.AssertExpectations(t)
	})

	t.Run("non-document body is not cached", func(t *testing.T) {
		mr.FlushAll()
		src := &MockSource{name: "bsi"}
		src.On("Fetch", mock.Anything).Return([]byte("<html>maintenance</html>"), nil).Once()

		cached := NewCachedSource(src, rdb, ttl)
		_, err := cached.Fetch(context.Background())
		assert.ErrorIs(t, err, ErrNotRateDocument)
		assert.False(t, mr.Exists("source_cache:{bsi}"))
		src.AssertExpectations(t)
	})

	t.Run("stale non-document entry is refetched", func(t *testing.T) {
		mr.FlushAll()
		assert.NoError(t, mr.Set("source_cache:{bsi}", "<html>maintenance</html>"))
		src := &MockSource{name: "bsi"}
		src.On("Fetch", mock.Anything).Return(doc, nil).Once()

		got, err := NewCachedSource(src, rdb, ttl).Fetch(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, doc, got)
		src.AssertExpectations(t)
	})

	t.Run("facade falls back past a maintenance page", func(t *testing.T) {
		mr.FlushAll()
		bsi := &MockSource{name: "bsi"}
		bsi.On("Fetch", mock.Anything).Return([]byte("<html>maintenance</html>"), nil)
		file := &MockSource{name: "file"}
		file.On("Fetch", mock.Anything).Return(doc, nil).Once()

		loader := NewLoader(NewSourceFacade(NewCachedSource(bsi, rdb, ttl), file))
		got, err := loader.Load(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 2, got.Len())
		assert.False(t, mr.Exists("source_cache:{bsi}"))
		file.AssertExpectations(t)
	})

	t.Run("cache expires", func(t *testing.T) {
		mr.FlushAll()
		src := &MockSource{name: "bsi"}
		src.On("Fetch", mock.Anything).Return(doc, nil).Once()

		cached := NewCachedSource(src, rdb, ttl)
		_, _ = cached.Fetch(context.Background())

		mr.FastForward(ttl + time.Second)

		src.On("Fetch", mock.Anything).Return(doc, nil).Once()
		_, err := cached.Fetch(context.Background())
		assert.NoError(t, err)
		src.AssertExpectations(t)
	})

	t.Run("invalidate forces refetch", func(t *testing.T) {
		mr.FlushAll()
		src := &MockSource{name: "bsi"}
		src.On("Fetch", mock.Anything).Return(doc, nil).Twice()

		cached := NewCachedSource(src, rdb, ttl)
		_, _ = cached.Fetch(context.Background())
		assert.NoError(t, cached.Invalidate(context.Background()))
		_, err := cached.Fetch(context.Background())
		assert.NoError(t, err)
		src.AssertExpectations(t)
	})

	t.Run("loader invalidates through the facade", func(t *testing.T) {
		mr.FlushAll()
		src := &MockSource{name: "bsi"}
		src.On("Fetch", mock.Anything).Return(doc, nil).Once()

		loader := NewLoader(NewSourceFacade(NewCachedSource(src, rdb, ttl), &MockSource{name: "file"}))
		_, err := loader.Load(context.Background())
		assert.NoError(t, err)
		assert.True(t, mr.Exists("source_cache:{bsi}"))

		assert.NoError(t, loader.Invalidate(context.Background()))
		assert.False(t, mr.Exists("source_cache:{bsi}"))
	})

	t.Run("nil cache passes through", func(t *testing.T) {
		src := &MockSource{name: "bsi"}
		src.On("Fetch", mock.Anything).Return(doc, nil).Twice()

		cached := NewCachedSource(src, nil, ttl)
		_, _ = cached.Fetch(context.Background())
		_, _ = cached.Fetch(context.Background())
		src.AssertExpectations(t)
		assert.NoError(t, cached.Invalidate(context.Background()))
	})
}
