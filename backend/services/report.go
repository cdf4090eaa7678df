// ABOUTME: PDF report of a classified well batch
// ABOUTME: Renders an A3 landscape table with one row per recommendation

package services

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/markalston/separator-sizer/backend/models"
)

const (
	reportTitle      = "Separator Calculation Results"
	reportColWidth   = 33.0
	reportRowHeight  = 18.0
	reportLineHeight = 5.0
)

// ReportColumns are the table headings, in column order
var ReportColumns = []string{
	"Separator Type",
	"Reason",
	"Oil Flow (BOPD)",
	"Water Flow (BWPD)",
	"Gas Flow (MMscfd)",
	"Sand Content (%)",
	"Separated Oil (BOPD)",
	"Separated Water (BWPD)",
	"Separated Gas (MMscfd)",
	"Flash Oil Fraction (%)",
	"Flash Water Fraction (%)",
	"Flash Gas Fraction (%)",
}

// ReportWriter renders classification batches as PDF documents
type ReportWriter struct {
	title string
}

// NewReportWriter creates a report writer with the standard title
func NewReportWriter() *ReportWriter {
	return &ReportWriter{title: reportTitle}
}

// Render returns the PDF bytes for a batch
func (rw *ReportWriter) Render(recs []models.Recommendation) ([]byte, error) {
	var buf bytes.Buffer
	if err := rw.Write(&buf, recs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders the batch to w
func (rw *ReportWriter) Write(w io.Writer, recs []models.Recommendation) error {
	pdf := fpdf.New("L", "mm", "A3", "")
	pdf.SetTitle(rw.title, true)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, rw.title, "", 1, "C", false, 0, "")
		pdf.Ln(10)

		pdf.SetFont("Arial", "B", 7)
		for _, h := range ReportColumns {
			pdf.CellFormat(reportColWidth, reportRowHeight, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottomMargin := pdf.GetMargins()
	pageBottom := pageHeight - bottomMargin

	for _, rec := range recs {
		cells := reportRow(rec)

		reasonLines := pdf.SplitLines([]byte(cells[1]), reportColWidth-2)
		rowHeight := reportRowHeight
		if h := float64(len(reasonLines)) * reportLineHeight; h > rowHeight {
			rowHeight = h
		}

		if pdf.GetY()+rowHeight > pageBottom {
			pdf.AddPage()
		}

		x, y := pdf.GetXY()
		pdf.CellFormat(reportColWidth, rowHeight, cells[0], "1", 0, "C", false, 0, "")

		// Reason wraps inside a fixed-height box
		pdf.Rect(x+reportColWidth, y, reportColWidth, rowHeight, "D")
		pdf.MultiCell(reportColWidth, reportLineHeight, cells[1], "", "C", false)
		pdf.SetXY(x+2*reportColWidth, y)

		for _, c := range cells[2:] {
			pdf.CellFormat(reportColWidth, rowHeight, c, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(rowHeight)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return pdf.Output(w)
}

// reportRow formats one recommendation in ReportColumns order
func reportRow(rec models.Recommendation) []string {
	return []string{
		rec.SeparatorType.Label(),
		rec.Reason,
		formatNumber(rec.Well.OilFlow),
		formatNumber(rec.Well.WaterFlow),
		formatNumber(rec.Well.GasFlow),
		formatNumber(rec.Well.SandContent),
		fmt.Sprintf("%.2f", rec.SeparatedOil),
		fmt.Sprintf("%.2f", rec.SeparatedWater),
		fmt.Sprintf("%.2f", rec.SeparatedGas),
		fmt.Sprintf("%.5f", rec.Phases.OilPercent),
		fmt.Sprintf("%.5f", rec.Phases.WaterPercent),
		fmt.Sprintf("%.5f", rec.Phases.GasPercent),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
