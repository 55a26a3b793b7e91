package rates

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return t, nil
}

// ParseRate parses a published rate value such as "1.1720".
func ParseRate(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrMalformedRate, s)
	}
	if v.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is negative", ErrMalformedRate, s)
	}
	return v, nil
}
