package validate

import (
	"fmt"
	"time"

	"github.com/apiprobe/apiprobe/internal/models"
	"github.com/tidwall/gjson"
)

// Engine checks HTTP outcomes against test definition expectations
type Engine struct {
	maxResponseTime time.Duration
}

// NewEngine creates a validation engine with the given latency threshold
func NewEngine(maxResponseTime time.Duration) *Engine {
	return &Engine{maxResponseTime: maxResponseTime}
}

// Validate checks one outcome against a definition and returns the recorded
// verdict. Every check runs regardless of earlier failures, and failure
// details accumulate in check order: status, latency, then JSON paths in
// definition order. Validation is a pure function of its inputs.
func (e *Engine) Validate(def models.TestDefinition, outcome models.Outcome) models.TestResult {
	result := models.TestResult{
		Name:           def.Name,
		StatusObserved: outcome.StatusCode,
		ElapsedSeconds: outcome.ElapsedSeconds(),
		Err:            outcome.Err,
	}

	if !outcome.Received() {
		result.FailureDetails = []string{"no response received"}
		return result
	}

	var details []string

	if outcome.StatusCode != def.ExpectedStatus {
		details = append(details, fmt.Sprintf("expected status %d, got %d",
			def.ExpectedStatus, outcome.StatusCode))
	}

	if outcome.Elapsed > e.maxResponseTime {
		details = append(details, fmt.Sprintf("latency %.1fs exceeds threshold %.1fs",
			outcome.ElapsedSeconds(), e.maxResponseTime.Seconds()))
	}

	details = append(details, checkJSONPaths(def.RequiredJSONPaths, outcome.Body)...)

	result.FailureDetails = details
	result.Passed = len(details) == 0
	return result
}

// checkJSONPaths verifies that every required dotted path resolves to a
// present value in the body. Paths are checked independently; one missing
// path never masks another. Numeric segments index arrays, so
// "data.items.0.id" resolves through the first element of data.items.
func checkJSONPaths(paths []string, body []byte) []string {
	if len(paths) == 0 {
		return nil
	}
	if !gjson.ValidBytes(body) {
		return []string{"response body is not valid JSON"}
	}

	var details []string
	for _, path := range paths {
		if !gjson.GetBytes(body, path).Exists() {
			details = append(details, fmt.Sprintf("missing JSON path %q", path))
		}
	}
	return details
}
