package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/dompet/internal/cli"
	"github.com/Veraticus/dompet/internal/common"
	"github.com/Veraticus/dompet/internal/history"
	"github.com/Veraticus/dompet/internal/ledger"
	"github.com/Veraticus/dompet/internal/model"
	"github.com/Veraticus/dompet/internal/tui"
	"github.com/Veraticus/dompet/internal/tui/themes"
)

func historyCmd() *cobra.Command {
	var (
		category    string
		date        string
		pages       int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"ls", "log"},
		Short:   "Show recorded transactions",
		Long: `Show transactions newest first, grouped into Today, Yesterday, This Week and Older.

Without filters only the most recent transactions are shown. --category matches
any part of the category name, --date (YYYY-MM-DD) matches a single day and
--pages loads more results. --interactive opens the full-screen browser.`,
		Example: `  dompet history
  dompet history --category makan --pages 2
  dompet history --date 2024-03-15
  dompet history -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if date != "" {
				if _, err := time.Parse(history.DateKeyLayout, date); err != nil {
					return common.NewUserError(fmt.Sprintf("date must look like YYYY-MM-DD, got %q", date), common.ErrInvalidInput)
				}
			}
			if pages < 1 {
				return common.NewUserError("--pages must be at least 1", common.ErrInvalidInput)
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if interactive {
				theme, ok := themes.ByName(a.cfg.Theme)
				if !ok {
					return common.NewUserError(
						fmt.Sprintf("unknown theme %q (available: %s)", a.cfg.Theme, strings.Join(themes.Names(), ", ")),
						common.ErrInvalidConfig)
				}
				return tui.Run(ctx, a.ledger,
					tui.WithTheme(theme),
					tui.WithPageSize(a.cfg.PageSize),
					tui.WithFilter(category, date))
			}

			snap, err := a.ledger.Snapshot(ctx)
			if err != nil {
				return common.Explain(err)
			}

			out := cmd.OutOrStdout()
			filtered := category != "" || date != "" || cmd.Flags().Changed("pages")
			if !filtered {
				recent := history.Recent(snap.Transactions, history.RecentCount)
				printGroups(out, history.DeriveDateBuckets(recent, time.Now()))
				fmt.Fprintln(out, cli.SubtleStyle.Render(
					fmt.Sprintf("Showing %d of %d", len(recent), len(snap.Transactions))))
				return nil
			}

			window := history.NewWindow(snap.Transactions, a.cfg.PageSize, time.Local)
			window.SetCategoryQuery(category)
			window.SetDateQuery(date)
			for i := 1; i < pages; i++ {
				window.LoadMore()
			}

			printGroups(out, window.Groups(time.Now()))
			footer := fmt.Sprintf("Showing %d of %d", len(window.Visible()), len(window.Filtered()))
			if window.HasMore() {
				footer += fmt.Sprintf(" (--pages %d for more)", pages+1)
			}
			fmt.Fprintln(out, cli.SubtleStyle.Render(footer))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only categories containing this text")
	cmd.Flags().StringVarP(&date, "date", "d", "", "only this day (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&pages, "pages", "p", 1, "number of pages to show")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the interactive browser")
	return cmd
}

func printGroups(out io.Writer, groups []history.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("No transactions found."))
		return
	}

	for i, group := range groups {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, cli.SectionStyle.Render(group.Title()))
		for _, txn := range group.Transactions {
			fmt.Fprintln(out, formatLine(txn))
		}
	}
}

func formatLine(txn model.Transaction) string {
	line := fmt.Sprintf("  %s  #%-4d %-16s %s",
		history.FormatClock(txn.Date, time.Local),
		txn.ID,
		txn.Category,
		cli.FormatDirection(txn.Type == model.DirectionIn, ledger.FormatAmount(txn.Amount)))
	if txn.Description != "" {
		line += "  " + cli.SubtleStyle.Render(txn.Description)
	}
	return line
}
