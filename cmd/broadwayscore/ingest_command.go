package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"broadwayscore/internal/config"
	"broadwayscore/internal/ingest"
	"broadwayscore/internal/store"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "ingest <path>",
		Short: "Ingest raw scraped review records from a JSON file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				driver, err := ingest.NewDriver(cfg, st, ctx.logger())
				if err != nil {
					return err
				}

				summary, runErr := driver.Run(cmd.Context(), args[0])
				if summary != nil {
					if jsonOut {
						if err := writeJSON(cmd, summary); err != nil {
							return err
						}
					} else {
						fmt.Fprintln(cmd.OutOrStdout(), renderIngestSummary(summary))
					}
				}
				return runErr
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run summary as JSON")
	return cmd
}

func renderIngestSummary(summary *ingest.Summary) string {
	rows := [][]string{
		{"Processed", strconv.Itoa(summary.Processed)},
		{"Inserted", strconv.Itoa(summary.Inserted)},
		{"Duplicates skipped", strconv.Itoa(summary.Duplicates)},
		{"Flagged for review", strconv.Itoa(summary.Flagged)},
		{"Malformed", strconv.Itoa(summary.Malformed)},
		{"Unknown outlets", strconv.Itoa(summary.UnknownOutlets)},
		{"Verified", strconv.Itoa(summary.Verified)},
		{"Mismatches", strconv.Itoa(summary.Mismatches)},
		{"Quarantined", strconv.Itoa(summary.Quarantined)},
	}
	return renderTable([]string{"Outcome", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}
