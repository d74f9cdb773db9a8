package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/dompet/internal/cli"
	"github.com/Veraticus/dompet/internal/common"
	"github.com/Veraticus/dompet/internal/history"
	"github.com/Veraticus/dompet/internal/ledger"
	"github.com/Veraticus/dompet/internal/model"
)

func deleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Long:    `Delete a transaction and reverse its effect on the wallet balance.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0], "transaction id")
			if err != nil {
				return err
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			txn, err := a.store.GetTransaction(ctx, id)
			if err != nil {
				return common.Explain(err)
			}

			out := cmd.OutOrStdout()
			if !force {
				fmt.Fprintf(out, "#%d  %s  %s  %s\n",
					txn.ID,
					history.FormatDateTime(txn.Date, time.Local),
					txn.Category,
					cli.FormatDirection(txn.Type == model.DirectionIn, ledger.FormatAmount(txn.Amount)))

				ok, err := cli.NewLineReader(cmd.InOrStdin()).Confirm(ctx, out, "Delete this transaction?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.SubtleStyle.Render("Nothing deleted."))
					return nil
				}
			}

			if _, err := a.ledger.DeleteTransaction(ctx, id); err != nil {
				return common.Explain(err)
			}

			balance, err := a.store.GetBalance(ctx)
			if err != nil {
				return common.Explain(err)
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted transaction #%d", id)))
			fmt.Fprintf(out, "  Balance: %s\n", cli.BalanceStyle.Render(ledger.FormatAmount(balance)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without asking")
	return cmd
}
