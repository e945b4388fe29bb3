package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/BarCut/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData is the file format used to move the stock inventory between
// machines.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Inventory model.Inventory `json:"inventory"`
}

// ExportBackup writes the inventory to a versioned backup file.
func ExportBackup(exportPath string, inv model.Inventory) error {
	if inv.Stocks == nil {
		inv.Stocks = []model.StockPreset{}
	}
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Inventory: inv,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportBackup reads a file written by ExportBackup. The caller decides
// whether to replace or merge the contained inventory.
func ImportBackup(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Inventory.Stocks == nil {
		backup.Inventory.Stocks = []model.StockPreset{}
	}
	return backup, nil
}

// MergeInventory appends the presets of src whose IDs are not yet in dst.
func MergeInventory(dst, src model.Inventory) model.Inventory {
	ids := make(map[string]bool, len(dst.Stocks))
	for _, s := range dst.Stocks {
		ids[s.ID] = true
	}
	for _, s := range src.Stocks {
		if !ids[s.ID] {
			dst.Stocks = append(dst.Stocks, s)
			ids[s.ID] = true
		}
	}
	return dst
}
