package commands

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/export"
	"github.com/piwi3910/BarCut/internal/importer"
	"github.com/piwi3910/BarCut/internal/model"
)

// inputFlags are the stock and cut list flags shared by optimize and compare.
type inputFlags struct {
	stocks     []string
	cuts       []string
	stocksFile string
	cutsFile   string
	unlimited  bool
}

func (f *inputFlags) register(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&f.stocks, "stock", "s", nil, "stock bar as length[xqty], repeatable (e.g. 6000x4)")
	fs.StringArrayVarP(&f.cuts, "cut", "c", nil, "requested cut as length[xqty], repeatable (e.g. 1200x3)")
	fs.StringVar(&f.stocksFile, "stocks-file", "", "CSV or Excel file with label,length,quantity stock rows")
	fs.StringVar(&f.cutsFile, "cuts-file", "", "CSV or Excel file with label,length,quantity cut rows")
	fs.BoolVar(&f.unlimited, "unlimited", false, "treat every stock row as available in unlimited quantity")
}

// load collects stock and cut rows from flags and files. Import warnings
// are logged; import errors fail the command.
func (f *inputFlags) load(logger *slog.Logger) ([]model.StockPiece, []model.CutPiece, error) {
	stocks, err := collectRows("stock", f.stocks, f.stocksFile, logger)
	if err != nil {
		return nil, nil, err
	}
	cuts, err := collectRows("cut", f.cuts, f.cutsFile, logger)
	if err != nil {
		return nil, nil, err
	}
	if len(cuts.Rows) == 0 {
		return nil, nil, fmt.Errorf("no cuts given: use --cut or --cuts-file")
	}
	return stocks.ToStockPieces(), cuts.ToCutPieces(), nil
}

func collectRows(kind string, args []string, file string, logger *slog.Logger) (importer.ImportResult, error) {
	result, err := importer.ParseLengthArgs(args)
	if err != nil {
		return result, fmt.Errorf("--%s: %w", kind, err)
	}

	if file != "" {
		imported := importer.ImportFile(file)
		if len(imported.Errors) > 0 {
			return result, fmt.Errorf("%s: %s", file, strings.Join(imported.Errors, "; "))
		}
		result.Rows = append(result.Rows, imported.Rows...)
		result.Warnings = append(result.Warnings, imported.Warnings...)
		logger.Info("imported list", "kind", kind, "file", file, "rows", len(imported.Rows))
	}

	for _, w := range result.Warnings {
		logger.Warn("input adjusted", "kind", kind, "detail", w)
	}
	return result, nil
}

// algorithmFlags select which algorithms run and seed the genetic search.
type algorithmFlags struct {
	algorithm string
	seed      int64
}

func (f *algorithmFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.algorithm, "algorithm", "a", "all", "algorithm to run: all, ffd, bfd, genetic")
	fs.Int64Var(&f.seed, "seed", 0, "seed for the genetic search (random when unset)")
}

// newOptimizer builds an optimizer for the selected algorithms.
func (a *app) newOptimizer(cmd *cobra.Command, f algorithmFlags) (*engine.Optimizer, error) {
	var rng *rand.Rand
	if cmd.Flags().Changed("seed") {
		rng = rand.New(rand.NewSource(f.seed))
	}

	opts := []engine.Option{engine.WithLogger(a.logger)}
	name := strings.ToLower(strings.TrimSpace(f.algorithm))
	if name == "" || name == "all" {
		opts = append(opts, engine.WithGeneticConfig(a.cfg.Genetic), engine.WithRand(rng))
		return engine.New(opts...), nil
	}

	algorithm, ok := model.ParseAlgorithm(name)
	if !ok {
		return nil, fmt.Errorf("unknown algorithm %q: use all, ffd, bfd or genetic", f.algorithm)
	}
	alg, _ := engine.AlgorithmByName(algorithm, a.cfg.Genetic, rng)
	opts = append(opts, engine.WithAlgorithms(alg))
	return engine.New(opts...), nil
}

// runJob expands the rows, optimizes them and wraps the outcome in a report.
func runJob(opt *engine.Optimizer, stocks []model.StockPiece, cuts []model.CutPiece, mode model.StockMode) model.Report {
	outcome := opt.Optimize(model.ExpandStocks(stocks, mode), model.ExpandCuts(cuts))
	return model.NewReport(stocks, cuts, mode, outcome.Best, outcome.Winners, outcome.Scores, outcome.Result)
}

// outputFlags name the files a finished report is written to.
type outputFlags struct {
	json      bool
	pdf       string
	labels    string
	xlsx      string
	dxf       string
	minOffcut float64
}

func (f *outputFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.json, "json", false, "print the result as JSON instead of a summary")
	fs.StringVar(&f.pdf, "pdf", "", "write cutting diagrams to this PDF file")
	fs.StringVar(&f.labels, "labels", "", "write QR cut labels to this PDF file")
	fs.StringVar(&f.xlsx, "xlsx", "", "write the plan to this Excel workbook")
	fs.StringVar(&f.dxf, "dxf", "", "write cutting diagrams to this DXF file")
	fs.Float64Var(&f.minOffcut, "min-offcut", -1, "shortest remainder listed as a reusable offcut (default from config)")
}

// writeReport prints the report and writes every requested export.
func (a *app) writeReport(cmd *cobra.Command, report model.Report, f outputFlags) error {
	out := cmd.OutOrStdout()

	if f.json {
		if err := writeJSON(out, report.Result); err != nil {
			return err
		}
	} else {
		minOffcut := a.cfg.MinOffcutLength
		if f.minOffcut >= 0 {
			minOffcut = f.minOffcut
		}
		renderReport(out, report, model.DetectOffcuts(report.Result, minOffcut))
	}

	exports := []struct {
		format string
		path   string
		write  func(string) error
	}{
		{"pdf", f.pdf, func(p string) error { return export.ExportPDF(p, report) }},
		{"labels", f.labels, func(p string) error { return export.ExportLabels(p, report) }},
		{"xlsx", f.xlsx, func(p string) error { return export.ExportExcel(p, report) }},
		{"dxf", f.dxf, func(p string) error { return export.ExportDXF(p, report.Result) }},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path); err != nil {
			return fmt.Errorf("export %s: %w", e.format, err)
		}
		a.logger.Info("exported", "format", e.format, "path", e.path)
		if !f.json {
			fmt.Fprintln(out, labelStyle.Render(fmt.Sprintf("Wrote %s: %s", e.format, e.path)))
		}
	}
	return nil
}
