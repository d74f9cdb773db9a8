package ledger

import (
	"context"
	"log/slog"

	"github.com/Veraticus/dompet/internal/service"
)

// Reconciliation compares the stored balance with the one implied by the
// recorded transactions.
type Reconciliation struct {
	Stored   int64
	Expected int64
	TotalIn  int64
	TotalOut int64
	Applied  bool
}

// Drift is how far the stored balance is above the expected one.
func (r Reconciliation) Drift() int64 {
	return r.Stored - r.Expected
}

// Balanced reports whether no correction is needed.
func (r Reconciliation) Balanced() bool {
	return r.Drift() == 0
}

// Reconcile checks the balance against the sum of incoming minus outgoing
// transactions. When apply is true and they differ, the stored balance is
// reset to the expected value.
func (l *Ledger) Reconcile(ctx context.Context, apply bool) (Reconciliation, error) {
	var result Reconciliation
	err := l.store.WithTx(ctx, func(tx service.Store) error {
		stored, err := tx.GetBalance(ctx)
		if err != nil {
			return err
		}
		in, out, err := tx.Totals(ctx)
		if err != nil {
			return err
		}

		result = Reconciliation{
			Stored:   stored,
			Expected: in - out,
			TotalIn:  in,
			TotalOut: out,
		}
		if !apply || result.Balanced() {
			return nil
		}

		if err := tx.SetBalance(ctx, result.Expected); err != nil {
			return err
		}
		result.Applied = true
		return nil
	})
	if err != nil {
		return Reconciliation{}, err
	}

	if !result.Balanced() {
		slog.WarnContext(ctx, "balance drift detected",
			"stored", result.Stored,
			"expected", result.Expected,
			"applied", result.Applied)
	}
	return result, nil
}
