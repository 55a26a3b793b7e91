package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBSISource_Fetch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "application/xml", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(sampleXML))
		}))
		defer srv.Close()

		src := NewBSISource(srv.URL, 5)
		data, err := src.Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, sampleXML, string(data))
		assert.Equal(t, "bsi", src.Name())
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("maintenance"))
		}))
		defer srv.Close()

		_, err := NewBSISource(srv.URL, 5).Fetch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
		assert.Contains(t, err.Error(), "maintenance")
	})

	t.Run("empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		_, err := NewBSISource(srv.URL, 5).Fetch(context.Background())
		assert.Error(t, err)
	})

	t.Run("maintenance page with status 200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>maintenance</body></html>"))
		}))
		defer srv.Close()

		_, err := NewBSISource(srv.URL, 5).Fetch(context.Background())
		assert.ErrorIs(t, err, ErrNotRateDocument)
	})

	t.Run("oversized body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(sampleXML))
		}))
		defer srv.Close()

		src := NewBSISource(srv.URL, 5)
		src.maxSize = int64(len(sampleXML) - 1)
		_, err := src.Fetch(context.Background())
		assert.ErrorIs(t, err, ErrDocumentTooLarge)

		src.maxSize = int64(len(sampleXML))
		_, err = src.Fetch(context.Background())
		assert.NoError(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(sampleXML))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewBSISource(srv.URL, 5).Fetch(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("default url", func(t *testing.T) {
		assert.Equal(t, DefaultBSIURL, NewBSISource("", 5).url)
	})
}
