package reports

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"staffloop/globals"
)

// BuildAttendancePDF renders a printable attendance report. The QR in the
// corner deep-links back to the live attendance view.
func BuildAttendancePDF(sum AttendanceSummary) ([]byte, error) {
	qrPayload := fmt.Sprintf("%s/events/%s/attendance", globals.BaseURL, sum.EventID)
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Attendance Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Event: %s", sum.EventName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Expected: %d   Present: %d   Late: %d   No-show: %d",
		sum.TotalExpected, sum.TotalPresent, sum.TotalLate, sum.TotalNoShow))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 15, 35, 35, false, imageOpts, 0, "")

	writeTable := func(title string, headers []string, rows [][]string) {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 10, title)
		pdf.Ln(10)

		pdf.SetFont("Arial", "B", 11)
		widths := []float64{70, 30, 30, 30, 30}
		for i, h := range headers {
			pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 11)
		for _, row := range rows {
			for i, cell := range row {
				pdf.CellFormat(widths[i], 8, cell, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	if len(sum.ByRole) > 0 {
		rows := make([][]string, 0, len(sum.ByRole))
		for _, r := range sum.ByRole {
			rows = append(rows, []string{
				r.Role,
				fmt.Sprintf("%d", r.Expected),
				fmt.Sprintf("%d", r.Present),
				fmt.Sprintf("%d", r.Late),
				fmt.Sprintf("%d", r.NoShow),
			})
		}
		writeTable("By Role", []string{"Role", "Expected", "Present", "Late", "No-show"}, rows)
	}

	if len(sum.ByTeam) > 0 {
		rows := make([][]string, 0, len(sum.ByTeam))
		for _, t := range sum.ByTeam {
			rows = append(rows, []string{
				t.TeamName,
				fmt.Sprintf("%d", t.Expected),
				fmt.Sprintf("%d", t.Present),
				fmt.Sprintf("%d", t.Late),
				fmt.Sprintf("%d", t.NoShow),
			})
		}
		writeTable("By Team", []string{"Team", "Expected", "Present", "Late", "No-show"}, rows)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
