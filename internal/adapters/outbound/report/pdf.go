package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/anditpl/a11y-audit/internal/domain"
)

// PDFEncoder renders the combined report as the run's final PDF artifact.
type PDFEncoder struct{}

// NewPDFEncoder creates a PDFEncoder.
func NewPDFEncoder() *PDFEncoder { return &PDFEncoder{} }

// Encode implements domain.ReportEncoder. It cannot fail on a section
// without a listing because the report fold already substituted the
// placeholder.
func (e *PDFEncoder) Encode(report domain.CombinedReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Accessibility Audit Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	meta := fmt.Sprintf("Generated %s", report.Meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	if report.Meta.ToolVersion != "" {
		meta += fmt.Sprintf("  ·  a11y-audit %s", report.Meta.ToolVersion)
	}
	if report.Meta.CommitHash != "" {
		meta += fmt.Sprintf("  ·  commit %.8s", report.Meta.CommitHash)
	}
	pdf.CellFormat(0, 5, meta, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, section := range report.Sections {
		writeSection(pdf, section)
	}

	// Grand total
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(pdf.GetX(), pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(3)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total audit time: %s", report.Total.Round(1e6)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering combined report: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *fpdf.Fpdf, section domain.ReportSection) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, section.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(0, 5, section.TargetURL, "", 1, "L", false, 0, "")

	if section.Failure != "" {
		pdf.SetTextColor(185, 28, 28)
		pdf.MultiCell(0, 5, "Audit failed: "+section.Failure, "", "L", false)
		pdf.Ln(4)
		return
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	stats := fmt.Sprintf("Duration: %s   Violations: %d   Distinct rules: %d",
		section.Duration.Round(1e6), section.ViolationCount, section.RuleCount)
	pdf.CellFormat(0, 6, stats, "", 1, "L", false, 0, "")

	if len(section.Artifacts) > 0 {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.MultiCell(0, 4, "Artifacts: "+strings.Join(section.Artifacts, ", "), "", "L", false)
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(40, 40, 40)
	for _, line := range strings.Split(section.Listing, "\n") {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
	pdf.Ln(4)
}
