package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
)

// GetBalance returns the stored wallet balance. A missing row reads as zero.
func (e executor) GetBalance(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var balance int64
	err := e.q.QueryRowContext(ctx, `SELECT amount FROM wallet_balance WHERE id = 1`).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, storageErr("query balance", err)
	}
	return balance, nil
}

// AdjustBalance adds delta to the stored balance, creating the row if needed.
func (e executor) AdjustBalance(ctx context.Context, delta int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := e.q.ExecContext(ctx, `
		INSERT INTO wallet_balance (id, amount) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET amount = amount + excluded.amount`, delta); err != nil {
		return storageErr("adjust balance", err)
	}

	slog.DebugContext(ctx, "adjusted balance", "delta", delta)
	return nil
}

// SetBalance overwrites the stored balance.
func (e executor) SetBalance(ctx context.Context, amount int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := e.q.ExecContext(ctx, `
		INSERT INTO wallet_balance (id, amount) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET amount = excluded.amount`, amount); err != nil {
		return storageErr("set balance", err)
	}

	slog.InfoContext(ctx, "balance overwritten", "balance", amount)
	return nil
}
