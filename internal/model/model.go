package model

import "github.com/google/uuid"

// Algorithm identifies one of the cutting optimizers.
type Algorithm string

const (
	AlgorithmFFD     Algorithm = "ffd"     // First-Fit-Decreasing (fast, deterministic)
	AlgorithmBFD     Algorithm = "bfd"     // Best-Fit-Decreasing (tighter packing, deterministic)
	AlgorithmGenetic Algorithm = "genetic" // Genetic search (stochastic)
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmFFD:
		return "FFD"
	case AlgorithmBFD:
		return "BFD"
	case AlgorithmGenetic:
		return "Genetic"
	default:
		return string(a)
	}
}

// ParseAlgorithm returns the algorithm for a case-sensitive name and whether it was recognized.
func ParseAlgorithm(name string) (Algorithm, bool) {
	switch Algorithm(name) {
	case AlgorithmFFD, AlgorithmBFD, AlgorithmGenetic:
		return Algorithm(name), true
	}
	return "", false
}

// CutPiece is a requested cut length with a quantity.
type CutPiece struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Length   float64 `json:"length"`
	Quantity int     `json:"quantity"`
}

func NewCutPiece(label string, length float64, qty int) CutPiece {
	return CutPiece{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Length:   length,
		Quantity: qty,
	}
}

// StockPiece is an available raw material length with a quantity.
type StockPiece struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Length   float64 `json:"length"`
	Quantity int     `json:"quantity"`
}

func NewStockPiece(label string, length float64, qty int) StockPiece {
	return StockPiece{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Length:   length,
		Quantity: qty,
	}
}

// StockMode controls how stock rows are expanded before optimization.
type StockMode struct {
	Unlimited bool `json:"unlimited"`
	// UnlimitedQuantity is the number of pieces each stock row expands to
	// when Unlimited is set.
	UnlimitedQuantity int `json:"unlimited_quantity"`
}

// DefaultUnlimitedQuantity is the per-row piece count used in unlimited stock mode.
const DefaultUnlimitedQuantity = 100

func DefaultStockMode() StockMode {
	return StockMode{UnlimitedQuantity: DefaultUnlimitedQuantity}
}

// ExpandCuts flattens cut rows into one length per requested unit, in row order.
func ExpandCuts(cuts []CutPiece) []float64 {
	var out []float64
	for _, c := range cuts {
		for i := 0; i < c.Quantity; i++ {
			out = append(out, c.Length)
		}
	}
	return out
}

// ExpandStocks flattens stock rows into one length per piece, in row order.
// In unlimited mode every row contributes mode.UnlimitedQuantity pieces
// regardless of its own quantity.
func ExpandStocks(stocks []StockPiece, mode StockMode) []float64 {
	var out []float64
	for _, s := range stocks {
		qty := s.Quantity
		if mode.Unlimited {
			qty = mode.UnlimitedQuantity
			if qty <= 0 {
				qty = DefaultUnlimitedQuantity
			}
		}
		for i := 0; i < qty; i++ {
			out = append(out, s.Length)
		}
	}
	return out
}

// CuttingPlan is one stock piece together with the cuts assigned to it.
type CuttingPlan struct {
	Stock     float64   `json:"stock"`
	Cutting   []float64 `json:"cutting"`
	Remaining float64   `json:"remaining"`
}

// Used returns the total length of the cuts on this stock.
func (p CuttingPlan) Used() float64 {
	return sum(p.Cutting)
}

// Efficiency returns the usage percentage of this stock piece.
func (p CuttingPlan) Efficiency() float64 {
	if p.Stock == 0 {
		return 0
	}
	return p.Used() / p.Stock * 100.0
}

// Result is the outcome of a single optimizer run.
type Result struct {
	CuttingPlans     []CuttingPlan `json:"cuttingPlans"`
	UnplacedCuttings []float64     `json:"unplacedCuttings"`
	UnplacedStocks   []float64     `json:"unplacedStocks"`
	UsageRate        float64       `json:"usageRate"`
}

// NewResult assembles a Result and computes its usage rate. Nil slices are
// replaced by empty ones so the JSON form always carries arrays.
func NewResult(plans []CuttingPlan, unplacedCuttings, unplacedStocks []float64) Result {
	if plans == nil {
		plans = []CuttingPlan{}
	}
	if unplacedCuttings == nil {
		unplacedCuttings = []float64{}
	}
	if unplacedStocks == nil {
		unplacedStocks = []float64{}
	}
	return Result{
		CuttingPlans:     plans,
		UnplacedCuttings: unplacedCuttings,
		UnplacedStocks:   unplacedStocks,
		UsageRate:        UsageRate(plans),
	}
}

// UsageRate returns placed cut length divided by the original length of the
// stocks that appear in plans, or 0 when no stock is used.
func UsageRate(plans []CuttingPlan) float64 {
	var used, total float64
	for _, p := range plans {
		used += p.Used()
		total += p.Stock
	}
	if total <= 0 {
		return 0
	}
	return used / total
}

// PlacedCount returns the number of cuts assigned to some stock.
func (r Result) PlacedCount() int {
	n := 0
	for _, p := range r.CuttingPlans {
		n += len(p.Cutting)
	}
	return n
}

// TotalCutLength returns the summed length of all placed cuts.
func (r Result) TotalCutLength() float64 {
	var total float64
	for _, p := range r.CuttingPlans {
		total += p.Used()
	}
	return total
}

// TotalStockLength returns the summed original length of all used stocks.
func (r Result) TotalStockLength() float64 {
	var total float64
	for _, p := range r.CuttingPlans {
		total += p.Stock
	}
	return total
}

// WastePercent returns the share of used stock length left over, in percent.
func (r Result) WastePercent() float64 {
	if len(r.CuttingPlans) == 0 {
		return 0
	}
	return 100.0 - r.UsageRate*100.0
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Project is a saved job: the stock and cut lists, the stock mode, and the
// last report if the job has been optimized.
type Project struct {
	Name   string       `json:"name"`
	Stocks []StockPiece `json:"stocks"`
	Cuts   []CutPiece   `json:"cuts"`
	Mode   StockMode    `json:"mode"`
	Report *Report      `json:"report,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:   "Untitled",
		Stocks: []StockPiece{},
		Cuts:   []CutPiece{},
		Mode:   DefaultStockMode(),
	}
}
