package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF99")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFAA00"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5555"))
	bestStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(labelStyle).
		Headers(headers...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatLength(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinLengths(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatLength(v)
	}
	return strings.Join(parts, ", ")
}

// renderReport prints the cutting plans of a report and its reusable offcuts.
func renderReport(w io.Writer, report model.Report, offcuts []model.Offcut) {
	result := report.Result
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Cutting plan %s (%s)", report.ID, report.Best)))

	if len(result.CuttingPlans) > 0 {
		t := newTable("#", "Stock", "Cuts", "Remaining", "Usage")
		for i, p := range result.CuttingPlans {
			t.Row(
				strconv.Itoa(i+1),
				formatLength(p.Stock),
				joinLengths(p.Cutting),
				formatLength(p.Remaining),
				fmt.Sprintf("%.1f%%", p.Efficiency()),
			)
		}
		fmt.Fprintln(w, t.Render())
	}

	fmt.Fprintf(w, "%s %d  %s %d  %s %.2f%%\n",
		labelStyle.Render("Bars used:"), len(result.CuttingPlans),
		labelStyle.Render("Cuts placed:"), result.PlacedCount(),
		labelStyle.Render("Usage:"), report.UsagePercent())

	if len(report.Winners) > 1 {
		names := make([]string, len(report.Winners))
		for i, a := range report.Winners {
			names[i] = a.String()
		}
		fmt.Fprintln(w, labelStyle.Render("Tied: "+strings.Join(names, ", ")))
	}
	if len(result.UnplacedCuttings) > 0 {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("%d cut(s) could not be placed: %s",
			len(result.UnplacedCuttings), joinLengths(result.UnplacedCuttings))))
	}
	if len(result.UnplacedStocks) > 0 {
		fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf("Unused stock: %s", joinLengths(result.UnplacedStocks))))
	}
	if len(offcuts) > 0 {
		fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf("Reusable offcuts (%s total): %s",
			formatLength(model.TotalOffcutLength(offcuts)), joinOffcuts(offcuts))))
	}
}

func joinOffcuts(offcuts []model.Offcut) string {
	lengths := make([]float64, len(offcuts))
	for i, o := range offcuts {
		lengths[i] = o.Length
	}
	return joinLengths(lengths)
}

// renderComparison prints one row per algorithm, marking the best score.
func renderComparison(w io.Writer, results []engine.ComparisonResult) {
	fmt.Fprintln(w, titleStyle.Render("Algorithm comparison"))

	best := -1
	for i, r := range results {
		if best < 0 || r.Score > results[best].Score {
			best = i
		}
	}

	t := newTable("Algorithm", "Bars", "Placed", "Unplaced", "Waste", "Score")
	for i, r := range results {
		name := r.Algorithm.String()
		if i == best {
			name = bestStyle.Render(name + " *")
		}
		t.Row(
			name,
			strconv.Itoa(r.PlansUsed),
			strconv.Itoa(r.CutsPlaced),
			strconv.Itoa(r.UnplacedCount),
			fmt.Sprintf("%.1f%%", r.WastePercent),
			fmt.Sprintf("%.4f", r.Score),
		)
	}
	fmt.Fprintln(w, t.Render())
}
