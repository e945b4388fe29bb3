package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BarCut/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "barcut.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Genetic, cfg.Genetic)
	assert.Equal(t, model.DefaultUnlimitedQuantity, cfg.UnlimitedQuantity)
	assert.Equal(t, model.DefaultMinOffcutLength, cfg.MinOffcutLength)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
genetic:
  population_size: 20
  generations: 40
  mutation_rate: 0.25
  workers: 2
unlimited_quantity: 50
min_offcut_length: 300
price_per_stock: "12.50"
log_level: debug
log_format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Genetic.PopulationSize)
	assert.Equal(t, 40, cfg.Genetic.Generations)
	assert.InDelta(t, 0.25, cfg.Genetic.MutationRate, 1e-12)
	assert.Equal(t, 2, cfg.Genetic.Workers)
	assert.Equal(t, 50, cfg.UnlimitedQuantity)
	assert.Equal(t, 300.0, cfg.MinOffcutLength)
	assert.Equal(t, "json", cfg.LogFormat)

	price, err := cfg.Price()
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("12.5")))
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "genetic:\n  generations: 40\n")
	t.Setenv("BARCUT_GENETIC_GENERATIONS", "7")
	t.Setenv("BARCUT_UNLIMITED_QUANTITY", "25")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Genetic.Generations)
	assert.Equal(t, 25, cfg.UnlimitedQuantity)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
genetic:
  population_size: 0
unlimited_quantity: 0
price_per_stock: "-1"
log_level: loud
log_format: xml
`)

	_, err := Load(path)
	require.Error(t, err)
	for _, want := range []string{"genetic", "unlimited_quantity", "price_per_stock", "log level", "log_format"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestStockMode(t *testing.T) {
	cfg := Default()
	cfg.UnlimitedQuantity = 30

	mode := cfg.StockMode(true)
	assert.True(t, mode.Unlimited)
	assert.Equal(t, 30, mode.UnlimitedQuantity)
	assert.False(t, cfg.StockMode(false).Unlimited)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger("info", "json", &buf)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "plans", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"plans":2`)

	buf.Reset()
	logger, err = NewLogger("DEBUG", "text", &buf)
	require.NoError(t, err)
	logger.Debug("visible")
	assert.True(t, strings.Contains(buf.String(), "msg=visible"))

	_, err = NewLogger("info", "xml", &buf)
	assert.Error(t, err)
	_, err = NewLogger("chatty", "text", &buf)
	assert.Error(t, err)
}
