package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var _ Source = (*BSISource)(nil)

// DefaultBSIURL is the Bank of Slovenia historical reference-rate document.
const DefaultBSIURL = "https://www.bsi.si/_data/tecajnice/dtecbs-l.xml"

// maxDocumentSize caps the response body; the full history is a few MB.
const maxDocumentSize = 64 << 20

// ErrDocumentTooLarge is returned when the body exceeds maxDocumentSize.
var ErrDocumentTooLarge = errors.New("rate document too large")

// BSISource fetches the rate document from the Bank of Slovenia over HTTP.
type BSISource struct {
	url     string
	client  *http.Client
	maxSize int64
}

// NewBSISource creates a new BSISource.
func NewBSISource(url string, timeoutSec int) *BSISource {
	if url == "" {
		url = DefaultBSIURL
	}
	return &BSISource{
		url:     url,
		client:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxSize: maxDocumentSize,
	}
}

// Name identifies the source in logs and cache keys.
func (p *BSISource) Name() string { return "bsi" }

// Fetch downloads the XML document.
func (p *BSISource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("bsi request creation failed: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bsi request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("bsi returned status %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, p.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read bsi response: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("bsi returned an empty document")
	}
	if int64(len(data)) > p.maxSize {
		return nil, fmt.Errorf("%w: over %d bytes", ErrDocumentTooLarge, p.maxSize)
	}
	if err := CheckDocument(data); err != nil {
		return nil, fmt.Errorf("bsi: %w", err)
	}
	return data, nil
}
