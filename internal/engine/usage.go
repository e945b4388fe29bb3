package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/BarCut/internal/model"
)

// stockUsage tracks the cuts assigned to one stock piece during a run.
// remaining == original - sum(cuts) and remaining >= 0 hold at all times.
type stockUsage struct {
	original  float64
	remaining float64
	cuts      []float64
}

// newUsageArena creates one usage record per stock, indexed by position.
// Each run owns its arena exclusively.
func newUsageArena(stocks []float64) []stockUsage {
	arena := make([]stockUsage, len(stocks))
	for i, length := range stocks {
		arena[i] = stockUsage{original: length, remaining: length}
	}
	return arena
}

// fits reports whether the cutting can be taken from this stock.
func (u *stockUsage) fits(cutting float64) bool {
	return u.remaining >= cutting
}

// assign takes the cutting from this stock. It returns false and leaves the
// usage untouched when the stock is too short.
func (u *stockUsage) assign(cutting float64) bool {
	if !u.fits(cutting) {
		return false
	}
	u.remaining -= cutting
	u.cuts = append(u.cuts, cutting)
	if u.remaining < 0 {
		panic(fmt.Sprintf("engine: stock %.4f over-allocated, remaining %.4f", u.original, u.remaining))
	}
	return true
}

func (u *stockUsage) used() bool {
	return len(u.cuts) > 0
}

// buildResult converts an arena into a Result. Plans and unused stocks keep
// arena order.
func buildResult(arena []stockUsage, unplaced []float64) model.Result {
	plans := make([]model.CuttingPlan, 0, len(arena))
	unusedStocks := []float64{}
	for i := range arena {
		u := &arena[i]
		if !u.used() {
			unusedStocks = append(unusedStocks, u.original)
			continue
		}
		cuts := make([]float64, len(u.cuts))
		copy(cuts, u.cuts)
		plans = append(plans, model.CuttingPlan{
			Stock:     u.original,
			Cutting:   cuts,
			Remaining: u.remaining,
		})
	}
	return model.NewResult(plans, unplaced, unusedStocks)
}

// sortedDescending returns a stably sorted descending copy of lengths.
func sortedDescending(lengths []float64) []float64 {
	out := make([]float64, len(lengths))
	copy(out, lengths)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i] > out[j]
	})
	return out
}
