package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/piwi3910/BarCut/internal/model"
)

// InventoryFile is the name of the preset file inside ~/.barcut.
const InventoryFile = "inventory.json"

// DefaultInventoryPath returns ~/.barcut/inventory.json.
func DefaultInventoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".barcut", InventoryFile), nil
}

// SaveInventory writes the bar presets as indented JSON, creating parent
// directories as needed.
func SaveInventory(path string, inv model.Inventory) error {
	if inv.Stocks == nil {
		inv.Stocks = []model.StockPreset{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create inventory directory: %w", err)
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write inventory file: %w", err)
	}
	return nil
}

// LoadInventory reads the presets at path. A missing file is seeded with
// model.DefaultInventory and written back.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		inv := model.DefaultInventory()
		return inv, SaveInventory(path, inv)
	}
	if err != nil {
		return model.Inventory{}, fmt.Errorf("failed to read inventory file: %w", err)
	}

	inv, err := decodeInventory(data)
	if err != nil {
		return model.Inventory{}, fmt.Errorf("failed to parse inventory file %s: %w", path, err)
	}
	return inv, nil
}

// LoadOrCreateInventoryAt loads the inventory at path, or at the default
// location when path is empty. The resolved path is returned for saving.
func LoadOrCreateInventoryAt(path string) (model.Inventory, string, error) {
	if path == "" {
		def, err := DefaultInventoryPath()
		if err != nil {
			return model.DefaultInventory(), "", err
		}
		path = def
	}
	inv, err := LoadInventory(path)
	return inv, path, err
}

// LoadOrCreateInventory loads the inventory from the default location.
func LoadOrCreateInventory() (model.Inventory, string, error) {
	return LoadOrCreateInventoryAt("")
}

// ImportInventory merges the presets of an exported inventory file into
// existing. Presets whose ID is already known are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, fmt.Errorf("failed to read inventory file: %w", err)
	}
	imported, err := decodeInventory(data)
	if err != nil {
		return existing, fmt.Errorf("failed to parse inventory file %s: %w", path, err)
	}
	return MergeInventory(existing, imported), nil
}

func decodeInventory(data []byte) (model.Inventory, error) {
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	if inv.Stocks == nil {
		inv.Stocks = []model.StockPreset{}
	}
	return inv, nil
}
