package engine

import "github.com/piwi3910/BarCut/internal/model"

// FirstFitDecreasing assigns each cutting, longest first, to the first stock
// (longest first) that still has room for it. Assignments are never revisited.
func FirstFitDecreasing(stocks, cuttings []float64) model.Result {
	arena := newUsageArena(sortedDescending(stocks))
	unplaced := []float64{}

	for _, cutting := range sortedDescending(cuttings) {
		placed := false
		for i := range arena {
			if arena[i].assign(cutting) {
				placed = true
				break
			}
		}
		if !placed {
			unplaced = append(unplaced, cutting)
		}
	}

	return buildResult(arena, unplaced)
}
