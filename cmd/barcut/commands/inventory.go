package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/project"
)

func newInventoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage saved stock bar presets",
	}
	cmd.AddCommand(
		newInventoryListCmd(a),
		newInventoryAddCmd(a),
		newInventoryImportCmd(a),
		newInventoryBackupCmd(a),
		newInventoryRestoreCmd(a),
	)
	return cmd
}

// loadInventory reads the configured inventory file, creating it with the
// default presets on first use.
func (a *app) loadInventory() (model.Inventory, string, error) {
	inv, path, err := project.LoadOrCreateInventoryAt(a.cfg.InventoryPath)
	if err != nil {
		return model.Inventory{}, "", fmt.Errorf("load inventory: %w", err)
	}
	return inv, path, nil
}

func newInventoryListCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stock presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, _, err := a.loadInventory()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), inv)
			}

			t := newTable("ID", "Name", "Length", "Material", "Price")
			for _, s := range inv.Stocks {
				t.Row(s.ID, s.Name, formatLength(s.Length), s.Material, s.Price.StringFixed(2))
			}
			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("Stock inventory"))
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the inventory as JSON")
	return cmd
}

func newInventoryAddCmd(a *app) *cobra.Command {
	var (
		name     string
		length   float64
		material string
		price    string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a stock preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			if length <= 0 {
				return fmt.Errorf("--length must be positive")
			}
			p := decimal.Zero
			if price != "" {
				var err error
				p, err = decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("--price %q: %w", price, err)
				}
			}

			inv, path, err := a.loadInventory()
			if err != nil {
				return err
			}
			if inv.FindStockByName(name) != nil {
				return fmt.Errorf("a preset named %q already exists", name)
			}
			preset := model.NewStockPresetWithPrice(name, length, material, p)
			inv.Stocks = append(inv.Stocks, preset)
			if err := project.SaveInventory(path, inv); err != nil {
				return err
			}
			a.logger.Info("preset added", "id", preset.ID, "name", name, "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", name, preset.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "preset name")
	cmd.Flags().Float64Var(&length, "length", 0, "bar length")
	cmd.Flags().StringVar(&material, "material", "", "material")
	cmd.Flags().StringVar(&price, "price", "", "price per bar")
	return cmd
}

func newInventoryImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Merge presets from an exported inventory JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, path, err := a.loadInventory()
			if err != nil {
				return err
			}
			before := len(inv.Stocks)
			inv, err = project.ImportInventory(args[0], inv)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			if err := project.SaveInventory(path, inv); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d preset(s)\n", len(inv.Stocks)-before)
			return nil
		},
	}
}

func newInventoryBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup FILE",
		Short: "Write the inventory to a versioned backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, _, err := a.loadInventory()
			if err != nil {
				return err
			}
			if err := project.ExportBackup(args[0], inv); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d preset(s) to %s\n", len(inv.Stocks), args[0])
			return nil
		},
	}
}

func newInventoryRestoreCmd(a *app) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "restore FILE",
		Short: "Restore presets from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportBackup(args[0])
			if err != nil {
				return err
			}
			inv, path, err := a.loadInventory()
			if err != nil {
				return err
			}
			if replace {
				inv = backup.Inventory
			} else {
				inv = project.MergeInventory(inv, backup.Inventory)
			}
			if err := project.SaveInventory(path, inv); err != nil {
				return err
			}
			a.logger.Info("inventory restored", "from", args[0], "created_at", backup.CreatedAt, "presets", len(inv.Stocks))
			fmt.Fprintf(cmd.OutOrStdout(), "Inventory now holds %d preset(s)\n", len(inv.Stocks))
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "replace the inventory instead of merging into it")
	return cmd
}
