package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/dgt-vocab-bot/internal/service"
)

func newCardsCmd(opts *rootOptions) *cobra.Command {
	var shuffle bool

	cmd := &cobra.Command{
		Use:   "cards",
		Short: "List the cards of the working set in study order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(_ context.Context, e *env) error {
				cards := e.session.WorkingSet()
				if shuffle {
					cards = e.session.ShuffledWorkingSet()
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tWORD\tTRANSLATION\tCATEGORY\tKNOWN")
				for _, c := range cards {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
						c.ID, c.Word, c.TranslationFor(e.session.Language()), c.Category, yesNo(e.session.IsKnown(c.ID)))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "list in a uniformly random order")
	return cmd
}

func newTopicsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List topics and the categories of the selected topic",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(_ context.Context, e *env) error {
				out := cmd.OutOrStdout()

				counts := e.session.TopicCounts()
				for _, t := range entities.AllTopics() {
					fmt.Fprintf(out, "%-8s %-45s %d\n", t.ID, t.Name, counts[t.ID])
				}
				fmt.Fprintf(out, "%-8s %-45s %d\n", "-", "(no topic)", len(e.session.CardsWithoutTopics()))

				fmt.Fprintln(out)
				categories := e.session.CategoryCounts()
				names := make([]string, 0, len(categories))
				for name := range categories {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(out, "%-15s %d\n", name, categories[name])
				}
				return nil
			})
		},
	}
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress within the selected filter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(_ context.Context, e *env) error {
				stats := e.session.Stats()
				out := cmd.OutOrStdout()

				if d := e.session.Selection().Describe(); d != "" {
					fmt.Fprintf(out, "Filter:   %s\n", d)
				}
				fmt.Fprintf(out, "Total:    %d\n", stats.Total)
				fmt.Fprintf(out, "Known:    %d (%.1f%%)\n", stats.Known, stats.Percentage)
				fmt.Fprintf(out, "Unknown:  %d\n", stats.Unknown)
				fmt.Fprintf(out, "In deck:  %d\n", stats.Current)
				return nil
			})
		},
	}
}

// newMarkCmd builds "known" or "unknown".
func newMarkCmd(opts *rootOptions, known bool) *cobra.Command {
	use, short := "unknown", "Mark cards as not known"
	if known {
		use, short = "known", "Mark cards as known"
	}

	return &cobra.Command{
		Use:   use + " <id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			return opts.run(cmd, func(ctx context.Context, e *env) error {
				for _, id := range ids {
					if known {
						err = e.session.MarkKnown(ctx, id)
					} else {
						err = e.session.MarkUnknown(ctx, id)
					}
					if err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d card(s) marked %s\n", len(ids), use)
				return nil
			})
		},
	}
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [id...]",
		Short: "Reset all progress, or only the review history of the given cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				ids = nil
			}

			return opts.run(cmd, func(ctx context.Context, e *env) error {
				if err := e.session.ResetProgress(ctx, ids); err != nil {
					return err
				}
				if ids == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "All progress reset")
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Review history cleared for %d card(s)\n", len(ids))
				}
				return nil
			})
		},
	}
}

func newLanguageCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "language [en|ru]",
		Short:     "Show or store the translation language",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"en", "ru"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env) error {
				if len(args) == 1 {
					lang, err := service.ParseLanguage(strings.ToLower(args[0]))
					if err != nil {
						return err
					}
					if err := e.session.SetLanguage(ctx, lang); err != nil {
						return err
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), e.session.Language())
				return nil
			})
		},
	}
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil || id < 0 {
			return nil, fmt.Errorf("invalid card id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
