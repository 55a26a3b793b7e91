package testkit

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Sheet is one <tecajnica> of a generated rate document.
type Sheet struct {
	Date  string            // YYYY-MM-DD
	Rates map[string]string // currency code -> rate text
}

// RateDocumentXML renders sheets in the Bank of Slovenia dtecbs-l.xml layout.
func RateDocumentXML(sheets ...Sheet) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<tecajnice xmlns="http://www.bsi.si">` + "\n")
	for _, s := range sheets {
		fmt.Fprintf(&b, "  <tecajnica datum=%q>\n", s.Date)
		codes := make([]string, 0, len(s.Rates))
		for code := range s.Rates {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			fmt.Fprintf(&b, "    <tecaj oznaka=%q>%s</tecaj>\n", code, s.Rates[code])
		}
		b.WriteString("  </tecajnica>\n")
	}
	b.WriteString("</tecajnice>\n")
	return b.String()
}

// BSIServer is an httptest stand-in for the upstream rate document endpoint.
type BSIServer struct {
	*httptest.Server

	mu     sync.Mutex
	body   string
	status int
	hits   atomic.Int64
}

// NewBSIServer serves body with 200 until told otherwise. Close it when done.
func NewBSIServer(body string) *BSIServer {
	s := &BSIServer{body: body, status: http.StatusOK}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.hits.Add(1)
		s.mu.Lock()
		status, body := s.status, s.body
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	return s
}

// Respond changes what subsequent requests receive.
func (s *BSIServer) Respond(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status, s.body = status, body
}

// Hits reports how many requests were served.
func (s *BSIServer) Hits() int64 { return s.hits.Load() }
