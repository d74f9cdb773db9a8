package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/dompet/internal/ledger"
	"github.com/Veraticus/dompet/internal/model"
)

// Source is the part of the ledger the browser reads from and deletes through.
type Source interface {
	Snapshot(ctx context.Context) (*ledger.Snapshot, error)
	DeleteTransaction(ctx context.Context, id int64) (*model.Transaction, error)
}

var _ Source = (*ledger.Ledger)(nil)

// loadSnapshot reloads the wallet in the background.
func (m Model) loadSnapshot() tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		snap, err := source.Snapshot(ctx)
		return snapshotLoadedMsg{snapshot: snap, err: err}
	}
}

// deleteTransaction removes a transaction and reverses its balance effect.
func (m Model) deleteTransaction(id int64) tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		txn, err := source.DeleteTransaction(ctx, id)
		return transactionDeletedMsg{id: id, transaction: txn, err: err}
	}
}
