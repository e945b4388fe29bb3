package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/project"
)

func newOpenCmd(a *app) *cobra.Command {
	var (
		alg    algorithmFlags
		out    outputFlags
		rerun  bool
		update bool
	)

	cmd := &cobra.Command{
		Use:   "open PROJECT",
		Short: "Show or re-run a saved .barcut project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			p, err := project.LoadProject(path)
			if err != nil {
				return err
			}
			a.logger.Info("project loaded", "path", path, "name", p.Name,
				"stocks", len(p.Stocks), "cuts", len(p.Cuts))

			if p.Report == nil || rerun || update {
				if len(p.Cuts) == 0 {
					return fmt.Errorf("project %s has no cuts", p.Name)
				}
				opt, err := a.newOptimizer(cmd, alg)
				if err != nil {
					return err
				}
				report := runJob(opt, p.Stocks, p.Cuts, p.Mode)
				p.Report = &report
			}

			if err := a.writeReport(cmd, *p.Report, out); err != nil {
				return err
			}
			if update {
				if err := project.SaveProject(path, p); err != nil {
					return err
				}
				a.logger.Info("project updated", "path", path)
			}
			return nil
		},
	}

	alg.register(cmd.Flags())
	out.register(cmd.Flags())
	cmd.Flags().BoolVar(&rerun, "rerun", false, "optimize again instead of showing the saved result")
	cmd.Flags().BoolVar(&update, "update", false, "optimize again and write the new result back to the project")
	return cmd
}
