package provider

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"ratehistory/internal/rates"
)

// ErrDuplicateCurrency indicates a currency listed twice within one sheet.
var ErrDuplicateCurrency = errors.New("duplicate currency in sheet")

// ErrMissingCurrencyCode indicates a rate element without a currency code.
var ErrMissingCurrencyCode = errors.New("rate without currency code")

// ErrNotRateDocument indicates a body that is not a tecajnice document, such
// as an HTML maintenance page served with status 200.
var ErrNotRateDocument = errors.New("not a rate document")

// rootElement is the document element of dtecbs-l.xml.
const rootElement = "tecajnice"

// CheckDocument reports whether data starts with the tecajnice root element.
// It reads only up to the first start tag.
func CheckDocument(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNotRateDocument, err)
		}
		if el, ok := tok.(xml.StartElement); ok {
			if el.Name.Local != rootElement {
				return fmt.Errorf("%w: root element <%s>", ErrNotRateDocument, el.Name.Local)
			}
			return nil
		}
	}
}

// bsiDocument matches dtecbs-l.xml. Tags carry no namespace so the document
// decodes with or without the http://www.bsi.si default namespace.
type bsiDocument struct {
	XMLName xml.Name   `xml:"tecajnice"`
	Sheets  []bsiSheet `xml:"tecajnica"`
}

type bsiSheet struct {
	Date  string    `xml:"datum,attr"`
	Rates []bsiRate `xml:"tecaj"`
}

type bsiRate struct {
	Code  string `xml:"oznaka,attr"`
	Num   string `xml:"sifra,attr"`
	Value string `xml:",chardata"`
}

// DecodeDocument parses a rate document. Malformed dates and rates, as well
// as duplicate sheet dates, are rejected here rather than at query time.
func DecodeDocument(r io.Reader) (*rates.Document, error) {
	var raw bsiDocument
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	sheets := make([]rates.Sheet, 0, len(raw.Sheets))
	for _, s := range raw.Sheets {
		date, err := rates.ParseDate(s.Date)
		if err != nil {
			return nil, err
		}
		entries := make(map[string]decimal.Decimal, len(s.Rates))
		for _, e := range s.Rates {
			code := strings.TrimSpace(e.Code)
			if code == "" {
				return nil, fmt.Errorf("%w on %s", ErrMissingCurrencyCode, s.Date)
			}
			if _, dup := entries[code]; dup {
				return nil, fmt.Errorf("%w: %s on %s", ErrDuplicateCurrency, code, s.Date)
			}
			v, err := rates.ParseRate(e.Value)
			if err != nil {
				return nil, fmt.Errorf("%s on %s: %w", code, s.Date, err)
			}
			entries[code] = v
		}
		sheets = append(sheets, rates.Sheet{Date: date, Rates: entries})
	}

	return rates.NewDocument(sheets)
}

// Loader fetches the raw document from a Source and decodes it.
type Loader struct {
	source Source
}

// NewLoader creates a new Loader.
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// Load fetches and decodes the current document.
func (l *Loader) Load(ctx context.Context) (*rates.Document, error) {
	data, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := DecodeDocument(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.source.Name(), err)
	}
	return doc, nil
}

// Invalidate drops any cached copy of the document so the next Load reads the
// upstream. Sources without a cache are left alone.
func (l *Loader) Invalidate(ctx context.Context) error {
	if inv, ok := l.source.(Invalidator); ok {
		return inv.Invalidate(ctx)
	}
	return nil
}

// SourceName reports which source the loader reads from.
func (l *Loader) SourceName() string {
	return l.source.Name()
}
