package models

import "time"

// TestResult is the recorded verdict for one test definition. A result is
// passed exactly when FailureDetails is empty; every individual check
// failure is recorded, in check order.
type TestResult struct {
	Name           string   `json:"name"`
	Passed         bool     `json:"passed"`
	StatusObserved int      `json:"status_observed,omitempty"`
	ElapsedSeconds float64  `json:"elapsed_seconds"`
	FailureDetails []string `json:"failure_details,omitempty"`
	Err            string   `json:"error,omitempty"`
}

// RunSummary aggregates pass/fail counts for one run
type RunSummary struct {
	Total          int     `json:"total"`
	Passed         int     `json:"passed"`
	Failed         int     `json:"failed"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// LatencyStats aggregates observed response times for one run. Tests that
// never received a response are excluded.
type LatencyStats struct {
	Count       int     `json:"count"`
	MinSeconds  float64 `json:"min_seconds"`
	MaxSeconds  float64 `json:"max_seconds"`
	MeanSeconds float64 `json:"mean_seconds"`
}

// Report is the aggregated outcome of one suite run
type Report struct {
	ID        string       `json:"id"`
	SuiteName string       `json:"suite"`
	BaseURL   string       `json:"base_url"`
	StartedAt time.Time    `json:"started_at"`
	Results   []TestResult `json:"results"`
	Summary   RunSummary   `json:"summary"`
	Latency   LatencyStats `json:"latency"`
}

// Failed reports whether any test in the run failed
func (r *Report) Failed() bool {
	return r.Summary.Failed > 0
}
