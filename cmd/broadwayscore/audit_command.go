package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"broadwayscore/internal/aliases"
	"broadwayscore/internal/catalog"
	"broadwayscore/internal/config"
	"broadwayscore/internal/logging"
	"broadwayscore/internal/normalize"
	"broadwayscore/internal/store"
	"broadwayscore/internal/verify"
)

func newAuditCommand(ctx *commandContext) *cobra.Command {
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect catalog integrity",
	}

	auditCmd.AddCommand(newAuditContentCommand(ctx))
	auditCmd.AddCommand(newAuditAliasesCommand(ctx))
	auditCmd.AddCommand(newAuditRestoreCommand(ctx))

	return auditCmd
}

func newAuditContentCommand(ctx *commandContext) *cobra.Command {
	var fix bool
	var showSlug string

	cmd := &cobra.Command{
		Use:   "content",
		Short: "Re-verify stored review texts against their claimed shows",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				tables, err := aliases.Load()
				if err != nil {
					return err
				}
				norm := normalize.New(tables)

				shows, err := st.ListShows(cmd.Context())
				if err != nil {
					return err
				}

				var targets []*catalog.Show
				if showSlug != "" {
					show, err := st.GetShowBySlug(cmd.Context(), showSlug)
					if err != nil {
						return err
					}
					if show == nil {
						return fmt.Errorf("unknown show %q", showSlug)
					}
					targets = []*catalog.Show{show}
				} else {
					targets = shows
				}

				verifier := verify.NewVerifier(norm, cfg.Verification, ctx.logger(), verify.WithKnownShows(shows))

				var rows [][]string
				quarantined := 0
				for _, show := range targets {
					reviews, err := st.ListReviews(cmd.Context(), show.ID)
					if err != nil {
						return err
					}
					for _, review := range reviews {
						if strings.TrimSpace(review.Text()) == "" {
							continue
						}
						res := verifier.VerifyReview(review, show)
						rows = append(rows, []string{
							show.Slug,
							review.OutletID,
							review.CriticSlug,
							string(res.Verdict),
							fmt.Sprintf("%.1f", res.Score),
							strconv.Itoa(res.NegativeSignalCount),
						})
						if fix && verifier.QuarantineText(review, res) {
							if err := st.UpdateReview(cmd.Context(), review); err != nil {
								return err
							}
							quarantined++
						}
					}
				}

				out := cmd.OutOrStdout()
				if len(rows) == 0 {
					fmt.Fprintln(out, "No review texts to verify")
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Show", "Outlet", "Critic", "Verdict", "Score", "Neg"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
				))
				if fix {
					fmt.Fprintf(out, "Quarantined %d review text(s)\n", quarantined)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Quarantine text on confident mismatches")
	cmd.Flags().StringVar(&showSlug, "show", "", "Limit the audit to one show slug")
	return cmd
}

func newAuditAliasesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "aliases",
		Short: "List near-miss critic name pairs recorded during ingest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				candidates, err := st.ListFuzzyCandidates(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(candidates) == 0 {
					fmt.Fprintln(out, "No fuzzy candidates recorded")
					return nil
				}
				rows := make([][]string, 0, len(candidates))
				for _, candidate := range candidates {
					rows = append(rows, []string{
						candidate.Left,
						candidate.Right,
						strconv.Itoa(candidate.Distance),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Name", "Near Miss", "Distance"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight},
				))
				if isTerminal(cmd.OutOrStdout()) {
					fmt.Fprintln(out, "Promote confirmed pairs into the curated alias table; nothing merges automatically.")
				}
				return nil
			})
		},
	}
}

func newAuditRestoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <review-id>",
		Short: "Restore quarantined text back into a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				review, err := st.GetReviewByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if review == nil {
					return fmt.Errorf("unknown review %q", args[0])
				}
				if !verify.RestoreText(review) {
					return fmt.Errorf("review %s has no quarantined text", review.ID)
				}
				if err := st.UpdateReview(cmd.Context(), review); err != nil {
					return err
				}
				ctx.logger().Info("review text restored",
					logging.String("review_id", review.ID),
					logging.String("show_id", review.ShowID))
				fmt.Fprintf(cmd.OutOrStdout(), "Restored text for review %s\n", review.ID)
				return nil
			})
		},
	}
}
