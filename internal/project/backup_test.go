package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BarCut/internal/model"
)

func TestExportAndImportBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	inv := model.Inventory{Stocks: []model.StockPreset{
		model.NewStockPreset("Flat bar 3000", 3000, "Steel"),
	}}

	if err := ExportBackup(path, inv); err != nil {
		t.Fatalf("ExportBackup failed: %v", err)
	}

	backup, err := ImportBackup(path)
	if err != nil {
		t.Fatalf("ImportBackup failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if len(backup.Inventory.Stocks) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(backup.Inventory.Stocks))
	}
	if backup.Inventory.Stocks[0].Name != "Flat bar 3000" {
		t.Errorf("expected name 'Flat bar 3000', got %s", backup.Inventory.Stocks[0].Name)
	}
}

func TestImportBackupMissingFile(t *testing.T) {
	_, err := ImportBackup(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportBackupInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportBackup(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportBackupMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"inventory":{"stocks":[]}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportBackup(path)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestExportBackupCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "backup.json")

	if err := ExportBackup(path, model.Inventory{}); err != nil {
		t.Fatalf("ExportBackup should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportBackupNilStocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","inventory":{"stocks":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportBackup(path)
	if err != nil {
		t.Fatalf("ImportBackup failed: %v", err)
	}
	if backup.Inventory.Stocks == nil {
		t.Error("Stocks should not be nil after import")
	}
}

func TestMergeInventorySkipsKnownIDs(t *testing.T) {
	a := model.NewStockPreset("A", 1000, "Steel")
	b := model.NewStockPreset("B", 2000, "Steel")

	merged := MergeInventory(model.Inventory{Stocks: []model.StockPreset{a}}, model.Inventory{Stocks: []model.StockPreset{a, b}})
	if len(merged.Stocks) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(merged.Stocks))
	}
	if merged.Stocks[1].ID != b.ID {
		t.Errorf("expected %s appended, got %s", b.ID, merged.Stocks[1].ID)
	}
}
