package tui

import (
	"github.com/Veraticus/dompet/internal/ledger"
	"github.com/Veraticus/dompet/internal/model"
)

// Data loading messages.
type snapshotLoadedMsg struct {
	err      error
	snapshot *ledger.Snapshot
}

// Async operation messages.
type transactionDeletedMsg struct {
	err         error
	transaction *model.Transaction
	id          int64
}
