// Package export writes optimization reports to PDF, label sheets, Excel
// workbooks and DXF drawings.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/BarCut/internal/model"
)

// cutColor represents an RGB color for a cut segment.
type cutColor struct {
	R, G, B int
}

var cutColors = []cutColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0

	barHeight   = 10.0
	barSpacing  = 9.0 // caption line above each bar
	barRowTotal = barHeight + barSpacing + 3.0
)

// ExportPDF generates a PDF document for a report. Plans are drawn as scaled
// bars, as many per page as fit, followed by a summary page.
func ExportPDF(path string, report model.Report) error {
	result := report.Result
	if len(result.CuttingPlans) == 0 {
		return fmt.Errorf("no cutting plans to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	longest := longestStock(result.CuttingPlans)
	barsPerPage := plansPerPage()
	pages := (len(result.CuttingPlans) + barsPerPage - 1) / barsPerPage

	for i, plan := range result.CuttingPlans {
		if i%barsPerPage == 0 {
			pdf.AddPage()
			renderPageHeader(pdf, report, i/barsPerPage+1, pages)
		}
		y := drawAreaTop + float64(i%barsPerPage)*barRowTotal
		renderPlanBar(pdf, plan, i+1, longest, y)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, report)

	return pdf.OutputFileAndClose(path)
}

// plansPerPage returns how many bar rows fit between the page header and the
// bottom margin, at least one.
func plansPerPage() int {
	usable := pageHeight - drawAreaTop - marginBottom
	n := int(usable / barRowTotal)
	if n < 1 {
		return 1
	}
	return n
}

func renderPageHeader(pdf *fpdf.Fpdf, report model.Report, page, pages int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Cutting Plans (%d/%d)", page, pages)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Algorithm: %s | Stocks used: %d | Usage: %.1f%%",
		report.Best, len(report.Result.CuttingPlans), report.UsagePercent())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")
}

// renderPlanBar draws one stock as a bar scaled against the longest stock.
// Cut segments are filled; the remainder is hatched.
func renderPlanBar(pdf *fpdf.Fpdf, plan model.CuttingPlan, num int, longest, y float64) {
	drawWidth := pageWidth - marginLeft - marginRight
	scale := drawWidth / longest

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	caption := fmt.Sprintf("#%d  Stock %s mm  |  %d cuts  |  remaining %s mm  |  %.1f%%",
		num, formatLength(plan.Stock), len(plan.Cutting), formatLength(plan.Remaining), plan.Efficiency())
	pdf.CellFormat(drawWidth, 5, caption, "", 0, "L", false, 0, "")

	barY := y + barSpacing
	barW := plan.Stock * scale

	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(marginLeft, barY, barW, barHeight, "FD")

	x := marginLeft
	for i, cut := range plan.Cutting {
		w := cut * scale
		col := cutColors[i%len(cutColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, barY, w, barHeight, "FD")

		text := formatLength(cut)
		pdf.SetFont("Helvetica", "", labelFontSize(w))
		if tw := pdf.GetStringWidth(text); tw < w-1 {
			pdf.SetXY(x+(w-tw)/2, barY+barHeight/2-2)
			pdf.CellFormat(tw, 4, text, "", 0, "C", false, 0, "")
		}
		x += w
	}

	if plan.Remaining > 0 {
		drawHatchPattern(pdf, x, barY, plan.Remaining*scale, barHeight)
	}
	pdf.SetTextColor(0, 0, 0)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark offcut length.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.15)

	spacing := 2.5
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, report model.Report) {
	result := report.Result

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutting Optimization Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Report", report.ID},
		{"Best Algorithm", report.Best.String()},
		{"Stocks Used", fmt.Sprintf("%d", len(result.CuttingPlans))},
		{"Usage Rate", fmt.Sprintf("%.2f%%", report.UsagePercent())},
		{"Cuts Placed", fmt.Sprintf("%d", result.PlacedCount())},
		{"Unplaced Cuts", fmt.Sprintf("%d", len(result.UnplacedCuttings))},
	}
	if !report.Mode.Unlimited {
		summaryItems = append(summaryItems, struct {
			label string
			value string
		}{"Unused Stocks", fmt.Sprintf("%d", len(result.UnplacedStocks))})
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if len(report.Scores) > 0 {
		y += 5
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Algorithm Scores", "", 0, "L", false, 0, "")
		y += 9

		colWidths := []float64{50, 40, 30}
		headers := []string{"Algorithm", "Score", "Winner"}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += 6

		pdf.SetFont("Helvetica", "", 9)
		for i, s := range report.Scores {
			winner := ""
			if isWinner(report, s.Algorithm) {
				winner = "yes"
			}
			if i%2 == 0 {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			xPos = marginLeft
			for j, cell := range []string{s.Algorithm.String(), fmt.Sprintf("%.4f", s.Score), winner} {
				pdf.SetXY(xPos, y)
				pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
				xPos += colWidths[j]
			}
			y += 6
		}
	}

	if len(result.UnplacedCuttings) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Cuts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(marginLeft+5, y)
		pdf.MultiCell(pageWidth-marginLeft-marginRight-5, 5, joinLengths(result.UnplacedCuttings), "", "L", false)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BarCut - 1D Cutting Stock Optimizer", "", 0, "C", false, 0, "")
}

// labelFontSize returns a font size that fits a segment of width w.
func labelFontSize(w float64) float64 {
	switch {
	case w > 40:
		return 8
	case w > 20:
		return 7
	default:
		return 6
	}
}

func longestStock(plans []model.CuttingPlan) float64 {
	longest := 0.0
	for _, p := range plans {
		longest = math.Max(longest, p.Stock)
	}
	if longest <= 0 {
		return 1
	}
	return longest
}

func isWinner(report model.Report, a model.Algorithm) bool {
	for _, w := range report.Winners {
		if w == a {
			return true
		}
	}
	return false
}

// formatLength prints whole lengths without decimals.
func formatLength(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func joinLengths(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatLength(v)
	}
	return strings.Join(parts, ", ")
}
