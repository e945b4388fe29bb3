package engine

import (
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/BarCut/internal/model"
)

// ComparisonResult holds one algorithm's result and its computed statistics.
type ComparisonResult struct {
	Algorithm     model.Algorithm
	Result        model.Result
	PlansUsed     int
	CutsPlaced    int
	WastePercent  float64
	UnplacedCount int
	Score         float64
}

// Compare runs every configured algorithm concurrently and returns their
// results in algorithm order. Each algorithm receives its own copy of the
// inputs.
func (o *Optimizer) Compare(stocks, cuttings []float64) []ComparisonResult {
	results := make([]ComparisonResult, len(o.Algorithms))

	var eg errgroup.Group
	for i, alg := range o.Algorithms {
		s := cloneLengths(stocks)
		c := cloneLengths(cuttings)
		eg.Go(func() error {
			result := alg.Run(s, c)
			results[i] = ComparisonResult{
				Algorithm:     alg.Name(),
				Result:        result,
				PlansUsed:     len(result.CuttingPlans),
				CutsPlaced:    result.PlacedCount(),
				WastePercent:  result.WastePercent(),
				UnplacedCount: len(result.UnplacedCuttings),
				Score:         Score(result),
			}
			return nil
		})
	}
	_ = eg.Wait()

	for _, r := range results {
		o.Logger.Debug("algorithm finished",
			slog.String("algorithm", r.Algorithm.String()),
			slog.Int("plans", r.PlansUsed),
			slog.Int("unplaced", r.UnplacedCount),
			slog.Float64("usage_rate", r.Result.UsageRate),
			slog.Float64("score", r.Score),
		)
	}
	return results
}

// CompareAlgorithms runs the given algorithms side by side without logging.
func CompareAlgorithms(stocks, cuttings []float64, algorithms ...CuttingAlgorithm) []ComparisonResult {
	return New(WithAlgorithms(algorithms...)).Compare(stocks, cuttings)
}
