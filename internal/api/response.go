// Package api implements HTTP handlers for the rate history service.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const timeLayout = time.RFC3339

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"from must not be after to"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// formatRate renders a rate with the precision it was published with, so
// "1.1720" keeps its trailing zero.
func formatRate(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
