package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/tools"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of external binaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := tools.CheckBinaries(tools.Requirements(cfg.Tools))
			rows := make([][]string, 0, len(statuses))
			missing := 0
			for _, status := range statuses {
				available := "yes"
				if !status.Available {
					available = "no"
					if !status.Optional {
						missing++
					}
				}
				kind := "required"
				if status.Optional {
					kind = "optional"
				}
				rows = append(rows, []string{status.Name, status.Command, kind, available, status.Detail})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Tool", "Command", "Kind", "Available", "Detail"}, rows))
			if missing > 0 {
				return fmt.Errorf("%d required binaries missing", missing)
			}
			return nil
		},
	}
}
