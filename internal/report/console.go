package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/apiprobe/apiprobe/internal/models"
)

const summaryWidth = 60

// Adaptive colors that work on light and dark terminals.
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#FF4672"}
	colorSubtle = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	passStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	failRowStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	detailStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	ruleStyle    = lipgloss.NewStyle().Foreground(colorSubtle)
)

// PrintSummary renders the run summary table to w. The summary always
// prints, even when writing the report artifact failed.
func PrintSummary(w io.Writer, report *models.Report) {
	rule := ruleStyle.Render(strings.Repeat("=", summaryWidth))

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, titleStyle.Render(center("API TEST SUMMARY", summaryWidth)))
	fmt.Fprintln(w, rule)

	for _, res := range report.Results {
		mark := passStyle.Render("PASS")
		if !res.Passed {
			mark = failRowStyle.Render("FAIL")
		}
		fmt.Fprintf(w, "%s  | %-36s | status=%-3s | time=%.2fs\n",
			mark, res.Name, statusText(res), res.ElapsedSeconds)
		for _, detail := range res.FailureDetails {
			fmt.Fprintf(w, "        %s\n", detailStyle.Render("- "+detail))
		}
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total: %d | Passed: %d | Failed: %d\n",
		report.Summary.Total, report.Summary.Passed, report.Summary.Failed)
	if report.Latency.Count > 0 {
		fmt.Fprintf(w, "Latency: min=%.2fs mean=%.2fs max=%.2fs\n",
			report.Latency.MinSeconds, report.Latency.MeanSeconds, report.Latency.MaxSeconds)
	}
	fmt.Fprintln(w, rule)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
