package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/apiprobe/apiprobe/internal/models"
)

const (
	sheetName    = "Results"
	failBgColor  = "FF5900"
	firstColumn  = 'A'
	detailColumn = "E"
)

var excelHeaders = []string{"Name", "Result", "Status", "Time (s)", "Failure Details"}

// ExcelWriter renders the report as an xlsx workbook with one row per
// result and a trailing summary block. Failed rows get a red fill.
type ExcelWriter struct{}

// Write implements Writer. The workbook is assembled in memory and written
// through the same temp-then-rename path as the other formats.
func (w *ExcelWriter) Write(report *models.Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to prepare sheet: %w", err)
	}
	f.SetColWidth(sheetName, "A", "A", 40)
	f.SetColWidth(sheetName, "B", "D", 12)
	f.SetColWidth(sheetName, detailColumn, detailColumn, 60)

	failStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{failBgColor}},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	for i, header := range excelHeaders {
		cell := fmt.Sprintf("%c1", firstColumn+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, res := range report.Results {
		row := i + 2
		cells := []any{
			res.Name,
			verdict(res),
			statusText(res),
			res.ElapsedSeconds,
			strings.Join(res.FailureDetails, "; "),
		}
		for j, value := range cells {
			cell := fmt.Sprintf("%c%d", firstColumn+j, row)
			f.SetCellValue(sheetName, cell, value)
			if !res.Passed {
				f.SetCellStyle(sheetName, cell, cell, failStyle)
			}
		}
	}

	summaryRow := len(report.Results) + 3
	summary := []struct {
		label string
		value any
	}{
		{"Total", report.Summary.Total},
		{"Passed", report.Summary.Passed},
		{"Failed", report.Summary.Failed},
		{"Elapsed (s)", report.Summary.ElapsedSeconds},
	}
	for i, row := range summary {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+i), row.label)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+i), row.value)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return writeAtomic(path, buf.Bytes())
}
