package api

import (
	"time"

	"quotecalc/core/quote"
)

// QuoteRequest is the body of POST /api/quote and /api/quote/export
type QuoteRequest struct {
	quote.Draft

	// ApplyContingency overrides the server default for this quote
	ApplyContingency *bool `json:"apply_contingency,omitempty"`
}

// CountriesResponse is the body of GET /api/countries
type CountriesResponse struct {
	Countries []string `json:"countries"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status            string    `json:"status"`
	Version           string    `json:"version"`
	Time              string    `json:"time"`
	TablesFingerprint string    `json:"tables_fingerprint"`
	TablesLoadedAt    time.Time `json:"tables_loaded_at"`
	TablesSource      string    `json:"tables_source"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failed request
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
