package engine

import "github.com/piwi3910/BarCut/internal/model"

// BestFitDecreasing assigns each cutting, longest first, to the stock that
// leaves the smallest remainder after the cut. Ties go to the earliest stock
// in descending stock order.
func BestFitDecreasing(stocks, cuttings []float64) model.Result {
	arena := newUsageArena(sortedDescending(stocks))
	unplaced := []float64{}

	for _, cutting := range sortedDescending(cuttings) {
		bestIdx := -1
		bestResidual := 0.0
		for i := range arena {
			if !arena[i].fits(cutting) {
				continue
			}
			residual := arena[i].remaining - cutting
			if bestIdx < 0 || residual < bestResidual {
				bestIdx = i
				bestResidual = residual
			}
		}

		if bestIdx < 0 {
			unplaced = append(unplaced, cutting)
			continue
		}
		arena[bestIdx].assign(cutting)
	}

	return buildResult(arena, unplaced)
}
