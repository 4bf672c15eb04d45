package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/apiprobe/apiprobe/internal/config"
	"github.com/apiprobe/apiprobe/internal/models"
)

// Writer serializes a finished report to a destination file
type Writer interface {
	Write(report *models.Report, path string) error
}

// ForFormat returns the writer for a report format
func ForFormat(format string) (Writer, error) {
	switch format {
	case config.FormatText:
		return &TextWriter{}, nil
	case config.FormatJSON:
		return &JSONWriter{}, nil
	case config.FormatXLSX:
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// Filename returns the timestamped report file name for a format
func Filename(format string, t time.Time) string {
	ext := format
	if format == config.FormatText {
		ext = "txt"
	}
	return fmt.Sprintf("api_test_report_%s.%s", t.Format("20060102_150405"), ext)
}

// TextWriter renders the report as a plain-text artifact: one block per
// result followed by the run summary.
type TextWriter struct{}

// Write implements Writer
func (w *TextWriter) Write(report *models.Report, path string) error {
	var b strings.Builder

	b.WriteString("API TEST REPORT\n")
	fmt.Fprintf(&b, "run:     %s\n", report.ID)
	fmt.Fprintf(&b, "suite:   %s\n", report.SuiteName)
	fmt.Fprintf(&b, "target:  %s\n", report.BaseURL)
	fmt.Fprintf(&b, "started: %s\n\n", report.StartedAt.Format(time.RFC3339))

	for _, res := range report.Results {
		fmt.Fprintf(&b, "%s | %s | status=%s | time=%.2fs\n",
			verdict(res), res.Name, statusText(res), res.ElapsedSeconds)
		for _, detail := range res.FailureDetails {
			fmt.Fprintf(&b, "       - %s\n", detail)
		}
	}

	b.WriteString("\n" + strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "total: %d | passed: %d | failed: %d\n",
		report.Summary.Total, report.Summary.Passed, report.Summary.Failed)
	if report.Latency.Count > 0 {
		fmt.Fprintf(&b, "latency: min=%.2fs mean=%.2fs max=%.2fs\n",
			report.Latency.MinSeconds, report.Latency.MeanSeconds, report.Latency.MaxSeconds)
	}
	fmt.Fprintf(&b, "elapsed: %.2fs\n", report.Summary.ElapsedSeconds)

	return writeAtomic(path, []byte(b.String()))
}

// JSONWriter renders the report as indented JSON
type JSONWriter struct{}

// Write implements Writer
func (w *JSONWriter) Write(report *models.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return writeAtomic(path, append(data, '\n'))
}

// writeAtomic writes data through a temp file in the destination directory
// and renames it into place, so a failed run never leaves a partial report.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize report: %w", err)
	}
	return nil
}

func verdict(res models.TestResult) string {
	if res.Passed {
		return "PASS"
	}
	return "FAIL"
}

// statusText renders the observed status, or "-" when no response arrived
func statusText(res models.TestResult) string {
	if res.StatusObserved == 0 {
		return "-"
	}
	return strconv.Itoa(res.StatusObserved)
}
