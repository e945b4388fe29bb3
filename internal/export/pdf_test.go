package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BarCut/internal/model"
)

// buildTestReport creates a realistic report for testing.
func buildTestReport() model.Report {
	result := model.NewResult(
		[]model.CuttingPlan{
			{Stock: 6000, Cutting: []float64{2400, 2400, 1000}, Remaining: 200},
			{Stock: 3000, Cutting: []float64{1200, 800.5}, Remaining: 999.5},
		},
		[]float64{7000},
		[]float64{3000},
	)
	return model.NewReport(
		[]model.StockPiece{model.NewStockPiece("Steel tube", 6000, 1), model.NewStockPiece("Short", 3000, 2)},
		[]model.CutPiece{model.NewCutPiece("Rail", 2400, 2)},
		model.DefaultStockMode(),
		model.AlgorithmBFD,
		[]model.Algorithm{model.AlgorithmFFD, model.AlgorithmBFD},
		[]model.AlgorithmScore{
			{Algorithm: model.AlgorithmFFD, Score: 0.0731},
			{Algorithm: model.AlgorithmBFD, Score: 0.0731},
			{Algorithm: model.AlgorithmGenetic, Score: -0.12},
		},
		result,
	)
}

func assertFileWritten(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < minSize {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.pdf")

	if err := ExportPDF(path, buildTestReport()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	assertFileWritten(t, path, 500)
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	report := buildTestReport()
	report.Result = model.NewResult(nil, []float64{100}, nil)

	if err := ExportPDF(path, report); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("no file should be written for an empty result")
	}
}

func TestExportPDF_UnlimitedMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unlimited.pdf")
	report := buildTestReport()
	report.Mode = model.StockMode{Unlimited: true, UnlimitedQuantity: model.DefaultUnlimitedQuantity}

	if err := ExportPDF(path, report); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFileWritten(t, path, 500)
}

func TestExportPDF_ManyPlans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	// Enough bars to span several pages.
	plans := make([]model.CuttingPlan, 25)
	for i := range plans {
		plans[i] = model.CuttingPlan{
			Stock:     6000,
			Cutting:   []float64{1000 + float64(i*10), 500, 250},
			Remaining: 6000 - 1750 - float64(i*10),
		}
	}
	report := buildTestReport()
	report.Result = model.NewResult(plans, nil, nil)

	if err := ExportPDF(path, report); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFileWritten(t, path, 1000)
}

func TestPlansPerPage(t *testing.T) {
	// 163mm of drawing height holds seven 22mm rows.
	if got := plansPerPage(); got != 7 {
		t.Errorf("expected 7 bars per page, got %d", got)
	}
}

func TestFormatLength(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{6000, "6000"},
		{800.5, "800.5"},
		{0, "0"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			if got := formatLength(tt.in); got != tt.want {
				t.Errorf("formatLength(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestJoinLengths(t *testing.T) {
	if got := joinLengths([]float64{2400, 800.5}); got != "2400, 800.5" {
		t.Errorf("unexpected join %q", got)
	}
}

func TestLabelFontSize(t *testing.T) {
	if labelFontSize(50) != 8 || labelFontSize(30) != 7 || labelFontSize(5) != 6 {
		t.Error("unexpected font size steps")
	}
}

func TestLongestStock(t *testing.T) {
	if got := longestStock(buildTestReport().Result.CuttingPlans); got != 6000 {
		t.Errorf("expected 6000, got %v", got)
	}
	if got := longestStock(nil); got != 1 {
		t.Errorf("expected 1 for no plans, got %v", got)
	}
}
