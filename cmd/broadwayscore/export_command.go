package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"broadwayscore/internal/config"
	"broadwayscore/internal/score"
	"broadwayscore/internal/store"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the JSON dataset for publication",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				target := strings.TrimSpace(dir)
				if target == "" {
					target = cfg.Paths.ExportDir
				}

				aggregator := score.NewAggregator(cfg.Scoring)
				summary, err := st.Export(cmd.Context(), target, aggregator)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d show(s), %d review(s), %d score file(s) to %s\n",
					summary.Shows, summary.Reviews, summary.Scores, target)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Export directory (defaults to the configured export_dir)")
	return cmd
}
