// Package project persists jobs and the stock inventory as JSON files.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BarCut/internal/model"
)

// Extension is the file extension of saved jobs.
const Extension = ".barcut"

// WithExtension appends Extension to path unless it already ends with it.
func WithExtension(path string) string {
	if strings.EqualFold(filepath.Ext(path), Extension) {
		return path
	}
	return path + Extension
}

// SaveProject writes the project as indented JSON, creating parent
// directories as needed.
func SaveProject(path string, p model.Project) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// LoadProject reads a project saved by SaveProject. Missing lists come back
// empty and a zero unlimited quantity is restored to the default.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if p.Stocks == nil {
		p.Stocks = []model.StockPiece{}
	}
	if p.Cuts == nil {
		p.Cuts = []model.CutPiece{}
	}
	if p.Mode.UnlimitedQuantity <= 0 {
		p.Mode.UnlimitedQuantity = model.DefaultUnlimitedQuantity
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}
