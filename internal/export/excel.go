package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BarCut/internal/model"
)

// Sheet names of the exported workbook.
const (
	SheetPlans    = "Plans"
	SheetUnplaced = "Unplaced"
	SheetSummary  = "Summary"
)

// ExportExcel writes a report to an .xlsx workbook with one sheet for the
// cutting plans, one for unplaced lengths and one for the summary.
func ExportExcel(path string, report model.Report) error {
	if len(report.Result.CuttingPlans) == 0 {
		return fmt.Errorf("no cutting plans to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetPlans); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetUnplaced, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writePlansSheet(f, report.Result, bold); err != nil {
		return err
	}
	if err := writeUnplacedSheet(f, report, bold); err != nil {
		return err
	}
	if err := writeSummarySheet(f, report, bold); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writePlansSheet(f *excelize.File, result model.Result, headerStyle int) error {
	header := []interface{}{"#", "Stock", "Cuts", "Cut Count", "Used", "Remaining", "Efficiency %"}
	if err := writeHeader(f, SheetPlans, header, headerStyle); err != nil {
		return err
	}

	for i, plan := range result.CuttingPlans {
		row := []interface{}{
			i + 1,
			plan.Stock,
			joinLengths(plan.Cutting),
			len(plan.Cutting),
			plan.Used(),
			plan.Remaining,
			round2(plan.Efficiency()),
		}
		if err := setRow(f, SheetPlans, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetPlans, "C", "C", 40)
}

func writeUnplacedSheet(f *excelize.File, report model.Report, headerStyle int) error {
	if err := writeHeader(f, SheetUnplaced, []interface{}{"Kind", "Length"}, headerStyle); err != nil {
		return err
	}

	rowNum := 2
	for _, c := range report.Result.UnplacedCuttings {
		if err := setRow(f, SheetUnplaced, rowNum, []interface{}{"cutting", c}); err != nil {
			return err
		}
		rowNum++
	}
	for _, s := range report.Result.UnplacedStocks {
		if err := setRow(f, SheetUnplaced, rowNum, []interface{}{"stock", s}); err != nil {
			return err
		}
		rowNum++
	}
	return nil
}

func writeSummarySheet(f *excelize.File, report model.Report, headerStyle int) error {
	if err := writeHeader(f, SheetSummary, []interface{}{"Metric", "Value"}, headerStyle); err != nil {
		return err
	}

	result := report.Result
	rows := [][]interface{}{
		{"Report", report.ID},
		{"Created", report.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Best Algorithm", report.Best.String()},
		{"Stocks Used", len(result.CuttingPlans)},
		{"Cuts Placed", result.PlacedCount()},
		{"Unplaced Cuts", len(result.UnplacedCuttings)},
		{"Usage Rate %", round2(report.UsagePercent())},
		{"Total Cut Length", result.TotalCutLength()},
		{"Total Stock Length", result.TotalStockLength()},
	}
	for _, s := range report.Scores {
		rows = append(rows, []interface{}{"Score " + s.Algorithm.String(), s.Score})
	}

	for i, row := range rows {
		if err := setRow(f, SheetSummary, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetSummary, "A", "B", 22)
}

func writeHeader(f *excelize.File, sheet string, header []interface{}, style int) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
