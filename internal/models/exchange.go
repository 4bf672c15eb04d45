package models

import "time"

// Exchange is one captured request/response pair from the mock server,
// kept for inspection through the admin endpoints.
type Exchange struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Method      string    `json:"method"`
	Path        string    `json:"path"`
	Query       string    `json:"query,omitempty"`
	RequestBody string    `json:"request_body,omitempty"`
	StatusCode  int       `json:"status_code"`
	DurationMs  float64   `json:"duration_ms"`
	ClientAddr  string    `json:"client_addr,omitempty"`
}
