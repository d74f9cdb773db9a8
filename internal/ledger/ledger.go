// Package ledger records income and expenses so that every transaction write
// and its balance delta land in the same database transaction.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/dompet/internal/common"
	"github.com/Veraticus/dompet/internal/model"
	"github.com/Veraticus/dompet/internal/service"
)

// Ledger coordinates the transaction store and the wallet balance.
type Ledger struct {
	store          service.Storage
	allowOverdraft bool
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithOverdraft controls whether expenses may exceed the current balance.
// Overdraft is rejected by default.
func WithOverdraft(allow bool) Option {
	return func(l *Ledger) {
		l.allowOverdraft = allow
	}
}

// New creates a Ledger on top of store.
func New(store service.Storage, opts ...Option) *Ledger {
	l := &Ledger{store: store}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Entry describes money moving in or out of the wallet.
type Entry struct {
	Date        time.Time // zero means now
	Description string
	CategoryID  int64 // ignored for income
	Amount      int64
}

func (e Entry) validate() error {
	if e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d", common.ErrInvalidInput, e.Amount)
	}
	return nil
}

// RecordIncome files the entry under the income category and credits the balance.
func (l *Ledger) RecordIncome(ctx context.Context, entry Entry) (*model.Transaction, error) {
	if err := entry.validate(); err != nil {
		return nil, err
	}

	var recorded *model.Transaction
	err := l.store.WithTx(ctx, func(tx service.Store) error {
		income, err := tx.GetCategoryByName(ctx, model.IncomeCategoryName)
		if err != nil {
			return err
		}
		if income == nil {
			// Seeded by EnsureSchema; a missing row means the schema was never prepared.
			return fmt.Errorf("%w: income category %q is missing", common.ErrStorage, model.IncomeCategoryName)
		}

		recorded, err = record(ctx, tx, model.NewTransaction{
			Date:        entry.Date,
			Description: entry.Description,
			Type:        model.DirectionIn,
			CategoryID:  income.ID,
			Amount:      entry.Amount,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "recorded income", "id", recorded.ID, "amount", recorded.Amount)
	return recorded, nil
}

// RecordExpense files the entry under its category and debits the balance.
// Unless overdraft is allowed, an amount above the current balance fails with
// common.ErrInsufficientBalance and nothing is written.
func (l *Ledger) RecordExpense(ctx context.Context, entry Entry) (*model.Transaction, error) {
	if err := entry.validate(); err != nil {
		return nil, err
	}

	var recorded *model.Transaction
	err := l.store.WithTx(ctx, func(tx service.Store) error {
		var err error
		recorded, err = l.recordExpense(ctx, tx, entry)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "recorded expense",
		"id", recorded.ID, "amount", recorded.Amount, "category", recorded.Category)
	return recorded, nil
}

// RecordExpenseInNewCategory creates the named category when it does not
// exist yet and records the expense under it. Both happen or neither does.
func (l *Ledger) RecordExpenseInNewCategory(ctx context.Context, name string, entry Entry) (*model.Transaction, error) {
	if err := entry.validate(); err != nil {
		return nil, err
	}
	if model.NormalizeName(name) == "" {
		return nil, fmt.Errorf("%w: category name cannot be empty", common.ErrInvalidInput)
	}

	var recorded *model.Transaction
	err := l.store.WithTx(ctx, func(tx service.Store) error {
		categoryID, err := tx.CreateCategory(ctx, name)
		if err != nil {
			return err
		}
		entry.CategoryID = categoryID

		recorded, err = l.recordExpense(ctx, tx, entry)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "recorded expense in new category",
		"id", recorded.ID, "amount", recorded.Amount, "category", recorded.Category)
	return recorded, nil
}

func (l *Ledger) recordExpense(ctx context.Context, tx service.Store, entry Entry) (*model.Transaction, error) {
	category, err := tx.GetCategoryByID(ctx, entry.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.IsIncome() {
		return nil, fmt.Errorf("%w: expenses cannot be filed under %q", common.ErrInvalidInput, category.Name)
	}

	if !l.allowOverdraft {
		balance, err := tx.GetBalance(ctx)
		if err != nil {
			return nil, err
		}
		if entry.Amount > balance {
			return nil, fmt.Errorf("%w: expense of %d exceeds balance of %d",
				common.ErrInsufficientBalance, entry.Amount, balance)
		}
	}

	return record(ctx, tx, model.NewTransaction{
		Date:        entry.Date,
		Description: entry.Description,
		Type:        model.DirectionOut,
		CategoryID:  category.ID,
		Amount:      entry.Amount,
	})
}

// record writes the transaction and applies its delta.
func record(ctx context.Context, tx service.Store, txn model.NewTransaction) (*model.Transaction, error) {
	id, err := tx.CreateTransaction(ctx, txn)
	if err != nil {
		return nil, err
	}
	if err := tx.AdjustBalance(ctx, txn.Type.Delta(txn.Amount)); err != nil {
		return nil, err
	}
	return tx.GetTransaction(ctx, id)
}

// DeleteTransaction removes a transaction and reverses its effect on the
// balance. It returns the deleted transaction.
func (l *Ledger) DeleteTransaction(ctx context.Context, id int64) (*model.Transaction, error) {
	var deleted *model.Transaction
	err := l.store.WithTx(ctx, func(tx service.Store) error {
		txn, err := tx.GetTransaction(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteTransaction(ctx, id); err != nil {
			return err
		}
		if err := tx.AdjustBalance(ctx, -txn.Delta()); err != nil {
			return err
		}
		deleted = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "deleted transaction",
		"id", deleted.ID, "type", deleted.Type, "amount", deleted.Amount)
	return deleted, nil
}

// Snapshot is everything a screen needs to render the wallet.
type Snapshot struct {
	Transactions []model.Transaction
	Categories   []model.Category
	Balance      int64
	TotalIn      int64
	TotalOut     int64
}

// Snapshot reads transactions, categories, balance and totals in one
// consistent read.
func (l *Ledger) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	err := l.store.WithTx(ctx, func(tx service.Store) error {
		var err error
		if snap.Transactions, err = tx.ListTransactions(ctx); err != nil {
			return err
		}
		if snap.Categories, err = tx.ListCategories(ctx); err != nil {
			return err
		}
		if snap.Balance, err = tx.GetBalance(ctx); err != nil {
			return err
		}
		snap.TotalIn, snap.TotalOut, err = tx.Totals(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
