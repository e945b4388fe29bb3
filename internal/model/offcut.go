package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut is a usable remainder left on a stock piece after cutting.
type Offcut struct {
	ID        string  `json:"id"`
	PlanIndex int     `json:"plan_index"` // Index of the source plan in the result
	Stock     float64 `json:"stock"`      // Original length of the source stock
	Length    float64 `json:"length"`
}

// ToStockPiece converts an offcut into a stock row for reuse in a future job.
func (o Offcut) ToStockPiece() StockPiece {
	return NewStockPiece("Offcut "+o.ID, o.Length, 1)
}

// DefaultMinOffcutLength is the shortest remainder still considered reusable.
// Anything shorter is waste.
const DefaultMinOffcutLength = 100.0

// DetectOffcuts returns the remainders of a result that are at least
// minLength long, longest first. Unused stocks are not offcuts.
func DetectOffcuts(result Result, minLength float64) []Offcut {
	var offcuts []Offcut
	for i, p := range result.CuttingPlans {
		if p.Remaining <= 0 || p.Remaining < minLength {
			continue
		}
		offcuts = append(offcuts, Offcut{
			ID:        uuid.New().String()[:8],
			PlanIndex: i,
			Stock:     p.Stock,
			Length:    p.Remaining,
		})
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Length > offcuts[j].Length
	})
	return offcuts
}

// TotalOffcutLength returns the summed length of the offcuts.
func TotalOffcutLength(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Length
	}
	return total
}
