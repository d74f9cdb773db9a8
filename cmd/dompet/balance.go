package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/dompet/internal/cli"
	"github.com/Veraticus/dompet/internal/common"
	"github.com/Veraticus/dompet/internal/ledger"
)

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the wallet balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			snap, err := a.ledger.Snapshot(ctx)
			if err != nil {
				return common.Explain(err)
			}

			content := lipgloss.JoinVertical(lipgloss.Left,
				cli.BalanceStyle.Render(ledger.FormatAmount(snap.Balance)),
				"",
				fmt.Sprintf("%-8s %s", "In", cli.FormatDirection(true, ledger.FormatAmount(snap.TotalIn))),
				fmt.Sprintf("%-8s %s", "Out", cli.FormatDirection(false, ledger.FormatAmount(snap.TotalOut))),
				cli.SubtleStyle.Render(fmt.Sprintf("%d transactions", len(snap.Transactions))),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.RenderBox("Balance", content))
			if snap.Balance != snap.TotalIn-snap.TotalOut {
				fmt.Fprintln(out, cli.FormatWarning("Balance does not match recorded transactions. Run 'dompet reconcile'."))
			}
			return nil
		},
	}
}
