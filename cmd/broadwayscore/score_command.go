package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"broadwayscore/internal/catalog"
	"broadwayscore/internal/config"
	"broadwayscore/internal/score"
	"broadwayscore/internal/store"
)

func newScoreCommand(ctx *commandContext) *cobra.Command {
	scoreCmd := &cobra.Command{
		Use:   "score",
		Short: "Manage per-source scores and view the combined blend",
	}

	scoreCmd.AddCommand(newScoreSetCommand(ctx))
	scoreCmd.AddCommand(newScoreShowCommand(ctx))

	return scoreCmd
}

func parseSource(value string) (score.Source, error) {
	switch score.Source(value) {
	case score.SourceCritics, score.SourceCrowd, score.SourceDiscourse:
		return score.Source(value), nil
	default:
		return "", fmt.Errorf("unknown source %q (expected critics, crowd, or discourse)", value)
	}
}

func newScoreSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <show-slug> <source> <score> <sample-size>",
		Short: "Record the latest payload from one external rating feed",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				show, err := st.GetShowBySlug(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if show == nil {
					return fmt.Errorf("unknown show %q", args[0])
				}

				source, err := parseSource(args[1])
				if err != nil {
					return err
				}
				value, err := strconv.ParseFloat(args[2], 64)
				if err != nil || value < 0 || value > 100 {
					return fmt.Errorf("score must be a number between 0 and 100, got %q", args[2])
				}
				samples, err := strconv.Atoi(args[3])
				if err != nil || samples < 0 {
					return fmt.Errorf("sample size must be a non-negative integer, got %q", args[3])
				}

				payload := catalog.SourceScore{Score: value, SampleSize: samples}
				if err := st.SetSourceScore(cmd.Context(), show.ID, source, payload); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s score %.1f (n=%d) for %s\n",
					source, value, samples, show.Slug)
				return nil
			})
		},
	}
}

func newScoreShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <show-slug>",
		Short: "Show a show's per-source scores and the combined blend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				show, err := st.GetShowBySlug(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if show == nil {
					return fmt.Errorf("unknown show %q", args[0])
				}

				sources, err := st.ScoreSources(cmd.Context(), show.ID)
				if err != nil {
					return err
				}
				combined := score.NewAggregator(cfg.Scoring).Combine(sources)

				if jsonOut {
					return writeJSON(cmd, struct {
						Show     string         `json:"show"`
						Sources  score.Sources  `json:"sources"`
						Combined score.Combined `json:"combined"`
					}{Show: show.Slug, Sources: sources, Combined: combined})
				}

				rows := make([][]string, 0, 4)
				appendSource := func(source score.Source, payload *catalog.SourceScore) {
					if payload == nil {
						return
					}
					weight := ""
					if w, ok := combined.Weights[source]; ok {
						weight = fmt.Sprintf("%.1f%%", w)
					}
					rows = append(rows, []string{
						string(source),
						fmt.Sprintf("%.1f", payload.Score),
						strconv.Itoa(payload.SampleSize),
						weight,
					})
				}
				appendSource(score.SourceCritics, sources.Critics)
				appendSource(score.SourceCrowd, sources.Crowd)
				appendSource(score.SourceDiscourse, sources.Discourse)

				out := cmd.OutOrStdout()
				if len(rows) == 0 {
					fmt.Fprintf(out, "No scores recorded for %s\n", show.Slug)
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Source", "Score", "Samples", "Weight"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
				))
				if combined.Score != nil {
					fmt.Fprintf(out, "Combined: %d (%s)\n", *combined.Score, combined.Designation)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit scores as JSON")
	return cmd
}
