package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"splice/internal/journal"
	"splice/internal/pipeline"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <file.mkv> [file.mkv ...]",
		Short: "Demux, correct, and remux Matroska containers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := journal.Open(cfg.Paths.JournalDB)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			runner := pipeline.NewRunner(cfg, logger, store)
			rows := make([][]string, 0, len(args))
			for _, source := range args {
				job, err := runner.Process(cmd.Context(), source)
				if err != nil {
					return fmt.Errorf("process %s: %w", source, err)
				}
				rows = append(rows, []string{
					job.Source,
					job.OutputPath,
					strconv.Itoa(job.CorrectedTracks),
					strconv.Itoa(job.TotalFixes()),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Source", "Output", "Corrected Tracks", "Fixes"}, rows, 2, 3))
			return nil
		},
	}
	return cmd
}
