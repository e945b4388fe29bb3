package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/model"
)

func newEstimateCmd(a *app) *cobra.Command {
	var (
		cuts        []string
		cutsFile    string
		stockLength float64
		waste       float64
		price       string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate how many bars of one length to buy",
		Long: `Estimates the number of stock bars needed for a cut list from the total
cut length, widened by a waste factor. Run optimize for an exact layout.`,
		Example: `  barcut estimate --stock-length 6000 -c 1200x10 -c 800x4 --price 42.50`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stockLength <= 0 {
				return fmt.Errorf("--stock-length must be positive")
			}
			if waste < 0 {
				return fmt.Errorf("--waste must not be negative")
			}
			rows, err := collectRows("cut", cuts, cutsFile, a.logger)
			if err != nil {
				return err
			}
			if len(rows.Rows) == 0 {
				return fmt.Errorf("no cuts given: use --cut or --cuts-file")
			}

			unitPrice, err := a.cfg.Price()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("price") {
				unitPrice, err = decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("--price %q: %w", price, err)
				}
				if unitPrice.IsNegative() {
					return fmt.Errorf("--price must not be negative")
				}
			}

			est := model.CalculatePurchaseEstimate(rows.ToCutPieces(), stockLength, waste, unitPrice)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, est)
			}

			fmt.Fprintln(out, titleStyle.Render("Purchase estimate"))
			t := newTable()
			t.Row("Total cut length", formatLength(est.TotalCutLength))
			t.Row("Bar length", formatLength(est.StockLength))
			t.Row("Bars (exact)", fmt.Sprintf("%.2f", est.StocksNeededExact))
			t.Row("Bars (minimum)", fmt.Sprintf("%d", est.StocksNeededMin))
			t.Row(fmt.Sprintf("Bars (+%g%% waste)", est.WastePercent), fmt.Sprintf("%d", est.StocksWithWaste))
			if !est.PricePerStock.IsZero() {
				t.Row("Price per bar", est.PricePerStock.StringFixed(2))
				t.Row("Estimated cost", est.EstimatedCost.StringFixed(2))
			}
			fmt.Fprintln(out, t.Render())
			if est.OversizeCuts > 0 {
				fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("%d cut(s) are longer than one bar and cannot be cut from it", est.OversizeCuts)))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&cuts, "cut", "c", nil, "requested cut as length[xqty], repeatable")
	cmd.Flags().StringVar(&cutsFile, "cuts-file", "", "CSV or Excel file with label,length,quantity cut rows")
	cmd.Flags().Float64Var(&stockLength, "stock-length", 0, "length of one stock bar")
	cmd.Flags().Float64Var(&waste, "waste", 10, "waste allowance in percent")
	cmd.Flags().StringVar(&price, "price", "", "price per bar (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the estimate as JSON")
	return cmd
}
