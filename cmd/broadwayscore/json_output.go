package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// writeJSON renders a command report as indented JSON on stdout, backing
// the --json flags so scripted callers can consume ingest summaries and
// score blends without scraping tables. Review URLs appear in these
// reports, so HTML escaping stays off.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
