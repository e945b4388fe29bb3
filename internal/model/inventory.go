package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockPreset represents a reusable stock bar definition.
type StockPreset struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Length   float64         `json:"length"`
	Material string          `json:"material"`
	Price    decimal.Decimal `json:"price"` // Price per bar; zero if unknown
}

// NewStockPreset creates a new StockPreset with a generated ID and no price.
func NewStockPreset(name string, length float64, material string) StockPreset {
	return StockPreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Length:   length,
		Material: material,
		Price:    decimal.Zero,
	}
}

// NewStockPresetWithPrice creates a StockPreset carrying a price per bar.
func NewStockPresetWithPrice(name string, length float64, material string, price decimal.Decimal) StockPreset {
	sp := NewStockPreset(name, length, material)
	sp.Price = price
	return sp
}

// ToStockPiece converts a preset into a stock row with the given quantity.
func (sp StockPreset) ToStockPiece(qty int) StockPiece {
	return NewStockPiece(sp.Name, sp.Length, qty)
}

// Inventory holds the user's saved stock presets.
type Inventory struct {
	Stocks []StockPreset `json:"stocks"`
}

// DefaultInventory returns an inventory populated with common bar lengths.
func DefaultInventory() Inventory {
	return Inventory{
		Stocks: []StockPreset{
			NewStockPreset("Steel tube 6000", 6000, "Steel"),
			NewStockPreset("Aluminium profile 6000", 6000, "Aluminium"),
			NewStockPreset("Aluminium profile 3000", 3000, "Aluminium"),
			NewStockPreset("Timber 4800", 4800, "Timber"),
			NewStockPreset("Timber 2400", 2400, "Timber"),
			NewStockPreset("PVC pipe 3000", 3000, "PVC"),
		},
	}
}

// FindStockByID returns a pointer to the stock preset with the given ID, or nil.
func (inv *Inventory) FindStockByID(id string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].ID == id {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// FindStockByName returns a pointer to the first stock preset with the given name, or nil.
func (inv *Inventory) FindStockByName(name string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].Name == name {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// StockNames returns the preset names in inventory order.
func (inv *Inventory) StockNames() []string {
	names := make([]string, len(inv.Stocks))
	for i, s := range inv.Stocks {
		names[i] = s.Name
	}
	return names
}
