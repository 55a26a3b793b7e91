// Package rates implements date-range and point queries over a historical
// exchange-rate document. It performs no I/O: documents are built by callers
// from already-parsed sheets.
package rates

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used by the published rate sheets.
const DateLayout = "2006-01-02"

// Sheet is one daily snapshot of published rates keyed by currency code.
type Sheet struct {
	Date  time.Time
	Rates map[string]decimal.Decimal
}

// Document is an ordered, immutable sequence of rate sheets.
// Sheets are sorted by date ascending and no two share a calendar date.
type Document struct {
	sheets []Sheet
}

// NewDocument validates and orders the given sheets.
// The input slice and maps are copied, so later changes by the caller do not
// leak into the document.
func NewDocument(sheets []Sheet) (*Document, error) {
	out := make([]Sheet, 0, len(sheets))
	for _, s := range sheets {
		if s.Date.IsZero() {
			return nil, fmt.Errorf("%w: sheet without date", ErrMalformedDate)
		}
		entries := make(map[string]decimal.Decimal, len(s.Rates))
		for code, rate := range s.Rates {
			if rate.IsNegative() {
				return nil, fmt.Errorf("%w: %s on %s is %s", ErrMalformedRate, code, FormatDate(s.Date), rate.String())
			}
			entries[code] = rate
		}
		out = append(out, Sheet{Date: Day(s.Date), Rates: entries})
	}

	// Published order is not trusted.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	for i := 1; i < len(out); i++ {
		if out[i].Date.Equal(out[i-1].Date) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDate, FormatDate(out[i].Date))
		}
	}

	return &Document{sheets: out}, nil
}

// Len returns the number of sheets.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.sheets)
}

// First returns the date of the earliest sheet, or false for an empty document.
func (d *Document) First() (time.Time, bool) {
	if d.Len() == 0 {
		return time.Time{}, false
	}
	return d.sheets[0].Date, true
}

// Last returns the date of the most recent sheet, or false for an empty document.
func (d *Document) Last() (time.Time, bool) {
	if d.Len() == 0 {
		return time.Time{}, false
	}
	return d.sheets[len(d.sheets)-1].Date, true
}

// Sheets returns a copy of the sheets in chronological order.
func (d *Document) Sheets() []Sheet {
	if d.Len() == 0 {
		return nil
	}
	out := make([]Sheet, len(d.sheets))
	for i, s := range d.sheets {
		entries := make(map[string]decimal.Decimal, len(s.Rates))
		for code, rate := range s.Rates {
			entries[code] = rate
		}
		out[i] = Sheet{Date: s.Date, Rates: entries}
	}
	return out
}

// Currencies returns every currency code that appears in at least one sheet,
// sorted.
func (d *Document) Currencies() []string {
	if d.Len() == 0 {
		return []string{}
	}
	seen := make(map[string]struct{})
	for _, s := range d.sheets {
		for code := range s.Rates {
			seen[code] = struct{}{}
		}
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
