package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCurrencyCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"USD", true},
		{"usd", true},
		{"XDR", true},
		{"ABC123", true},
		{"", false},
		{"US$", false},
		{"U D", false},
		{"ČSK", false},
		{"TOOLONGCODE", false},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidCurrencyCode(tc.code))
		})
	}
}

func TestParseCurrencies(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		wantErr error
	}{
		{name: "empty", in: "", want: nil},
		{name: "blank", in: "  ", want: nil},
		{name: "single", in: "USD", want: []string{"USD"}},
		{name: "trimmed", in: " USD , GBP ", want: []string{"USD", "GBP"}},
		{name: "case preserved", in: "usd,USD", want: []string{"usd", "USD"}},
		{name: "deduplicated", in: "USD,GBP,USD", want: []string{"USD", "GBP"}},
		{name: "blank entries skipped", in: "USD,,GBP,", want: []string{"USD", "GBP"}},
		{name: "invalid", in: "USD,G-P", wantErr: ErrInvalidCurrencyCode},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCurrencies(tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
