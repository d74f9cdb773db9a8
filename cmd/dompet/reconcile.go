package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/dompet/internal/cli"
	"github.com/Veraticus/dompet/internal/common"
	"github.com/Veraticus/dompet/internal/ledger"
)

func reconcileCmd() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Check the balance against recorded transactions",
		Long: `Compare the stored wallet balance with total income minus total expenses.
With --apply, a mismatching balance is reset to the computed value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.ledger.Reconcile(ctx, apply)
			if err != nil {
				return common.Explain(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Stored balance:   %s\n", ledger.FormatAmount(result.Stored))
			fmt.Fprintf(out, "Expected balance: %s\n", ledger.FormatAmount(result.Expected))

			switch {
			case result.Balanced():
				fmt.Fprintln(out, cli.FormatSuccess("Balance matches recorded transactions"))
			case result.Applied:
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Balance corrected by %s", ledger.FormatAmount(-result.Drift()))))
			default:
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Balance is off by %s. Run with --apply to fix it.", ledger.FormatAmount(result.Drift()))))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "reset the stored balance to the expected value")
	return cmd
}
