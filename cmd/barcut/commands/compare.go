package commands

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/model"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		in     inputFlags
		alg    algorithmFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every algorithm and show their scores side by side",
		Args:  cobra.NoArgs,
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
			results := opt.Compare(model.ExpandStocks(stocks, mode), model.ExpandCuts(cuts))

			if asJSON {
				scores := make([]model.AlgorithmScore, len(results))
				for i, r := range results {
					scores[i] = model.AlgorithmScore{Algorithm: r.Algorithm, Score: r.Score}
				}
				return writeJSON(cmd.OutOrStdout(), scores)
			}
			renderComparison(cmd.OutOrStdout(), results)
			return nil
		},
	}

	in.register(cmd.Flags())
	alg.register(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the scores as JSON")
	return cmd
}
