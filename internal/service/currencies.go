package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCurrencyCode indicates a currency code with characters other than letters and digits.
var ErrInvalidCurrencyCode = errors.New("invalid currency code")

// ErrNoDocument indicates that no rate document has been loaded yet.
var ErrNoDocument = errors.New("rate document not loaded")

// ErrRefreshPending indicates a refresh is already queued.
var ErrRefreshPending = errors.New("refresh already pending")

// ErrInternal indicates an internal server error.
var ErrInternal = errors.New("internal error")

// ErrInternalQueue indicates an internal queue error.
var ErrInternalQueue = errors.New("internal queue error")

// maxCurrencyCodeLen bounds a single code; published codes are three letters.
const maxCurrencyCodeLen = 8

// IsValidCurrencyCode reports whether code is a non-empty run of ASCII letters and digits.
// Case is not changed: matching against the document is exact.
func IsValidCurrencyCode(code string) bool {
	if code == "" || len(code) > maxCurrencyCodeLen {
		return false
	}
	for _, c := range code {
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// ParseCurrencies splits a comma separated list such as "USD, GBP". Blank
// entries are skipped and repeats dropped, keeping first-seen order.
func ParseCurrencies(csv string) ([]string, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}

	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		code := strings.TrimSpace(p)
		if code == "" {
			continue
		}
		if !IsValidCurrencyCode(code) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCurrencyCode, code)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out, nil
}
