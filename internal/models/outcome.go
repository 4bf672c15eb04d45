package models

import "time"

// Outcome is the normalized result of one HTTP call, decoupled from the
// transport error model. A failure to obtain a response (dial error,
// timeout, interrupted body read) is carried in Err with StatusCode zero;
// it is never surfaced as a Go error to callers.
type Outcome struct {
	StatusCode int           `json:"status_code,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
	Body       []byte        `json:"-"`
	Err        string        `json:"error,omitempty"`
}

// Received reports whether an HTTP response arrived at all
func (o *Outcome) Received() bool {
	return o.Err == "" && o.StatusCode != 0
}

// ElapsedSeconds returns the observed elapsed time in seconds
func (o *Outcome) ElapsedSeconds() float64 {
	return o.Elapsed.Seconds()
}
