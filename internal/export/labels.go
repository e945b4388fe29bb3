package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/BarCut/internal/model"
)

// LabelInfo holds the data encoded into each cut label's QR code.
type LabelInfo struct {
	ReportID    string  `json:"report"`
	Length      float64 `json:"length_mm"`
	PlanIndex   int     `json:"plan"`
	StockLength float64 `json:"stock_mm"`
	Sequence    int     `json:"seq"`
	Offset      float64 `json:"offset_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ExportLabels generates a PDF of QR-coded labels, one per placed cut.
// Each label shows the cut length and where on which stock it comes from.
func ExportLabels(path string, report model.Report) error {
	if len(report.Result.CuttingPlans) == 0 {
		return fmt.Errorf("no cutting plans to generate labels for")
	}

	labels := CollectLabelInfos(report)
	if len(labels) == 0 {
		return fmt.Errorf("no cuts placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label %d/%d: %w", label.PlanIndex, label.Sequence, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%d", info.PlanIndex, info.Sequence)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 5, formatLength(info.Length)+" mm", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+6)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Stock #%d (%s mm)", info.PlanIndex, formatLength(info.StockLength)), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+10)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Cut %d @ %s mm", info.Sequence, formatLength(info.Offset)), "", 1, "L", false, 0, "")

	if info.ReportID != "" {
		pdf.SetXY(textX, y+labelPadding+13.5)
		pdf.CellFormat(textW, 3, "Job "+info.ReportID, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos lists every placed cut in plan order. Offset is the
// distance from the start of the stock to the start of the cut.
func CollectLabelInfos(report model.Report) []LabelInfo {
	var labels []LabelInfo
	for planIdx, plan := range report.Result.CuttingPlans {
		offset := 0.0
		for i, cut := range plan.Cutting {
			labels = append(labels, LabelInfo{
				ReportID:    report.ID,
				Length:      cut,
				PlanIndex:   planIdx + 1,
				StockLength: plan.Stock,
				Sequence:    i + 1,
				Offset:      offset,
			})
			offset += cut
		}
	}
	return labels
}
