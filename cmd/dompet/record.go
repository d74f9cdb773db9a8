package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/dompet/internal/cli"
	"github.com/Veraticus/dompet/internal/common"
	"github.com/Veraticus/dompet/internal/history"
	"github.com/Veraticus/dompet/internal/ledger"
	"github.com/Veraticus/dompet/internal/model"
)

// entryFlags are shared by the income and expense commands.
type entryFlags struct {
	note string
	date string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.note, "note", "n", "", "optional description")
	cmd.Flags().StringVar(&f.date, "date", "", "when it happened (YYYY-MM-DD, ISO-8601 or DD/MM/YYYY; default: now)")
}

func (f *entryFlags) entry(rawAmount string) (ledger.Entry, error) {
	amount, err := ledger.ParseAmount(rawAmount)
	if err != nil {
		return ledger.Entry{}, common.Explain(err)
	}

	entry := ledger.Entry{Amount: amount, Description: strings.TrimSpace(f.note)}
	if f.date != "" {
		date, ok := history.ParseDate(f.date, time.Local)
		if !ok {
			return ledger.Entry{}, common.NewUserError(fmt.Sprintf("cannot read date %q", f.date), common.ErrInvalidInput)
		}
		entry.Date = date
	}
	return entry, nil
}

func incomeCmd() *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:     "income <amount>",
		Aliases: []string{"in"},
		Short:   "Record money coming in",
		Long: `Record income. It is filed under the "` + model.IncomeCategoryName + `" category
and added to the wallet balance.`,
		Example: `  dompet income 5.000.000 --note gaji`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			entry, err := flags.entry(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			txn, err := a.ledger.RecordIncome(ctx, entry)
			if err != nil {
				return common.Explain(err)
			}
			return printRecorded(ctx, cmd.OutOrStdout(), a, txn)
		},
	}
	flags.register(cmd)
	return cmd
}

func expenseCmd() *cobra.Command {
	var (
		flags       entryFlags
		category    string
		newCategory string
	)

	cmd := &cobra.Command{
		Use:     "expense <amount>",
		Aliases: []string{"out", "spend"},
		Short:   "Record money going out",
		Long: `Record an expense under an existing category (--category, by id or name) or
under a category created on the spot (--new-category). The amount is taken
from the wallet balance.`,
		Example: `  dompet expense 25.000 --category Makan --note "nasi padang"
  dompet expense 18000 --new-category Kopi`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if (category == "") == (newCategory == "") {
				return common.NewUserError("use exactly one of --category or --new-category", common.ErrInvalidInput)
			}

			entry, err := flags.entry(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var txn *model.Transaction
			if newCategory != "" {
				txn, err = a.ledger.RecordExpenseInNewCategory(ctx, newCategory, entry)
			} else {
				entry.CategoryID, err = resolveCategory(ctx, a, category)
				if err != nil {
					return err
				}
				txn, err = a.ledger.RecordExpense(ctx, entry)
			}
			if err != nil {
				return common.Explain(err)
			}
			return printRecorded(ctx, cmd.OutOrStdout(), a, txn)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&category, "category", "c", "", "existing category name or id (names win)")
	cmd.Flags().StringVar(&newCategory, "new-category", "", "create this category if needed and use it")
	return cmd
}

// resolveCategory looks ref up as a category name first, so a category
// called "2024" stays reachable, and falls back to reading it as an id.
func resolveCategory(ctx context.Context, a *app, ref string) (int64, error) {
	cat, err := a.store.GetCategoryByName(ctx, ref)
	if err != nil {
		return 0, common.Explain(err)
	}
	if cat != nil {
		return cat.ID, nil
	}

	if id, err := strconv.ParseInt(strings.TrimSpace(ref), 10, 64); err == nil {
		return id, nil
	}

	msg := fmt.Sprintf("no category named %q (use --new-category to create it)", ref)
	if all, err := a.store.ListCategories(ctx); err == nil {
		if near, ok := ledger.SuggestCategory(all, ref); ok {
			msg = fmt.Sprintf("no category named %q, did you mean %q? (use --new-category to create it)", ref, near.Name)
		}
	}
	return 0, common.NewUserError(msg, common.ErrNotFound)
}

func printRecorded(ctx context.Context, out io.Writer, a *app, txn *model.Transaction) error {
	balance, err := a.store.GetBalance(ctx)
	if err != nil {
		return common.Explain(err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Recorded %s #%d in %s",
		strings.ToLower(txn.Type.Label()), txn.ID, txn.Category)))
	fmt.Fprintf(out, "  %s\n", cli.FormatDirection(txn.Type == model.DirectionIn, ledger.FormatAmount(txn.Amount)))
	fmt.Fprintf(out, "  Balance: %s\n", cli.BalanceStyle.Render(ledger.FormatAmount(balance)))
	return nil
}
