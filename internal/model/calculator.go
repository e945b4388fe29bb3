package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// PurchaseEstimate holds the results of a stock purchasing calculation.
type PurchaseEstimate struct {
	TotalCutLength    float64         `json:"total_cut_length"`    // Summed length of all requested cuts
	StockLength       float64         `json:"stock_length"`        // Length of one bar
	StocksNeededExact float64         `json:"stocks_needed_exact"` // Exact fractional number of bars
	StocksNeededMin   int             `json:"stocks_needed_min"`   // Minimum bars (ceiling of exact)
	StocksWithWaste   int             `json:"stocks_with_waste"`   // Recommended bars including waste factor
	WastePercent      float64         `json:"waste_percent"`       // Waste factor applied (e.g., 10 for 10%)
	OversizeCuts      int             `json:"oversize_cuts"`       // Cuts longer than one bar; never placeable
	PricePerStock     decimal.Decimal `json:"price_per_stock"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
}

// CalculatePurchaseEstimate computes how many bars of one length to buy for a
// cut list. The count is a length-based lower bound widened by wastePercent;
// the optimizer decides the real layout.
func CalculatePurchaseEstimate(cuts []CutPiece, stockLength, wastePercent float64, pricePerStock decimal.Decimal) PurchaseEstimate {
	var total float64
	oversize := 0
	for _, c := range cuts {
		if c.Quantity <= 0 {
			continue
		}
		if c.Length > stockLength {
			oversize += c.Quantity
			continue
		}
		total += c.Length * float64(c.Quantity)
	}

	if stockLength <= 0 {
		return PurchaseEstimate{
			TotalCutLength: total,
			WastePercent:   wastePercent,
			OversizeCuts:   oversize,
			PricePerStock:  pricePerStock,
			EstimatedCost:  decimal.Zero,
		}
	}

	exact := total / stockLength
	minStocks := int(math.Ceil(exact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minStocks {
		withWaste = minStocks
	}

	return PurchaseEstimate{
		TotalCutLength:    total,
		StockLength:       stockLength,
		StocksNeededExact: exact,
		StocksNeededMin:   minStocks,
		StocksWithWaste:   withWaste,
		WastePercent:      wastePercent,
		OversizeCuts:      oversize,
		PricePerStock:     pricePerStock,
		EstimatedCost:     pricePerStock.Mul(decimal.NewFromInt(int64(withWaste))),
	}
}
