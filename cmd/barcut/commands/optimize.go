package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/project"
)

func newOptimizeCmd(a *app) *cobra.Command {
	var (
		in   inputFlags
		alg  algorithmFlags
		out  outputFlags
		save string
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Plan cuts for a stock and cut list",
		Long: `Runs the cutting algorithms on the given stock and cut lists and keeps
the best-scoring plan. Lengths are given as length[xqty], for example
--stock 6000x4 --cut 1200x6.`,
		Example: `  barcut optimize -s 6000x2 -c 2500x3 -c 1200
  barcut optimize --stocks-file stock.csv --cuts-file cuts.xlsx --pdf plan.pdf
  barcut optimize -s 6000 -c 1500x8 --unlimited --algorithm bfd --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stocks, cuts, err := in.load(a.logger)
			if err != nil {
				return err
			}
			opt, err := a.newOptimizer(cmd, alg)
			if err != nil {
				return err
			}

			mode := a.cfg.StockMode(in.unlimited)
			report := runJob(opt, stocks, cuts, mode)
			if err := a.writeReport(cmd, report, out); err != nil {
				return err
			}

			if save == "" {
				return nil
			}
			path := project.WithExtension(save)
			p := model.Project{
				Name:   strings.TrimSuffix(filepath.Base(path), project.Extension),
				Stocks: stocks,
				Cuts:   cuts,
				Mode:   mode,
				Report: &report,
			}
			if err := project.SaveProject(path, p); err != nil {
				return err
			}
			a.logger.Info("project saved", "path", path)
			if !out.json {
				fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("Saved project: "+path))
			}
			return nil
		},
	}

	in.register(cmd.Flags())
	alg.register(cmd.Flags())
	out.register(cmd.Flags())
	cmd.Flags().StringVar(&save, "save", "", "save the job and its result as a .barcut project")
	return cmd
}
