// Package config loads BarCut settings from ~/.barcut.yaml, an explicit
// config file and BARCUT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/model"
)

// EnvPrefix is prepended to every environment override, e.g.
// BARCUT_GENETIC_GENERATIONS=200.
const EnvPrefix = "BARCUT"

// Config holds user settings. Flags override these values.
type Config struct {
	Genetic           engine.GeneticConfig `mapstructure:"genetic"`
	UnlimitedQuantity int                  `mapstructure:"unlimited_quantity"`
	MinOffcutLength   float64              `mapstructure:"min_offcut_length"`
	PricePerStock     string               `mapstructure:"price_per_stock"`
	InventoryPath     string               `mapstructure:"inventory_path"`
	LogLevel          string               `mapstructure:"log_level"`
	LogFormat         string               `mapstructure:"log_format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Genetic:           engine.DefaultGeneticConfig(),
		UnlimitedQuantity: model.DefaultUnlimitedQuantity,
		MinOffcutLength:   model.DefaultMinOffcutLength,
		PricePerStock:     "0",
		LogLevel:          "warn",
		LogFormat:         "text",
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("genetic.population_size", def.Genetic.PopulationSize)
	v.SetDefault("genetic.generations", def.Genetic.Generations)
	v.SetDefault("genetic.mutation_rate", def.Genetic.MutationRate)
	v.SetDefault("genetic.workers", def.Genetic.Workers)
	v.SetDefault("unlimited_quantity", def.UnlimitedQuantity)
	v.SetDefault("min_offcut_length", def.MinOffcutLength)
	v.SetDefault("price_per_stock", def.PricePerStock)
	v.SetDefault("inventory_path", def.InventoryPath)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
}

// DefaultPath returns ~/.barcut.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".barcut.yaml"), nil
}

// Load reads settings. An explicit path must exist; without one the
// default file is read if present. Environment variables override both.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if def, err := DefaultPath(); err == nil {
		if _, statErr := os.Stat(def); statErr == nil {
			v.SetConfigFile(def)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", def, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if err := c.Genetic.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("genetic: %w", err))
	}
	if c.UnlimitedQuantity < 1 {
		errs = append(errs, fmt.Errorf("unlimited_quantity must be positive, got %d", c.UnlimitedQuantity))
	}
	if c.MinOffcutLength < 0 {
		errs = append(errs, fmt.Errorf("min_offcut_length must not be negative, got %g", c.MinOffcutLength))
	}
	if _, err := c.Price(); err != nil {
		errs = append(errs, err)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Price returns the configured price per stock bar.
func (c Config) Price() (decimal.Decimal, error) {
	if strings.TrimSpace(c.PricePerStock) == "" {
		return decimal.Zero, nil
	}
	p, err := decimal.NewFromString(c.PricePerStock)
	if err != nil {
		return decimal.Zero, fmt.Errorf("price_per_stock %q: %w", c.PricePerStock, err)
	}
	if p.IsNegative() {
		return decimal.Zero, fmt.Errorf("price_per_stock must not be negative, got %s", p)
	}
	return p, nil
}

// StockMode returns the stock mode for the unlimited flag using the
// configured per-row quantity.
func (c Config) StockMode(unlimited bool) model.StockMode {
	return model.StockMode{Unlimited: unlimited, UnlimitedQuantity: c.UnlimitedQuantity}
}

// NewLogger builds a slog logger writing to w in the given format ("text"
// or "json") at the given level ("debug", "info", "warn", "error").
func NewLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func parseLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", level)
	}
	return lvl, nil
}
