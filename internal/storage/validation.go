// Package storage provides the data persistence layer for the wallet ledger.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/dompet/internal/common"
	"github.com/Veraticus/dompet/internal/model"
)

// Storage-level errors. Each wraps an error from the common taxonomy.
var (
	ErrNilContext          = errors.New("context cannot be nil")
	ErrEmptyString         = fmt.Errorf("%w: string parameter cannot be empty", common.ErrInvalidInput)
	ErrInvalidID           = fmt.Errorf("%w: id must be positive", common.ErrInvalidInput)
	ErrInvalidTransaction  = fmt.Errorf("%w: invalid transaction", common.ErrInvalidInput)
	ErrReservedCategory    = fmt.Errorf("%w: the income category cannot be renamed or deleted", common.ErrInvalidInput)
	ErrCategoryNotFound    = fmt.Errorf("category %w", common.ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transaction %w", common.ErrNotFound)
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s=%d", ErrInvalidID, paramName, id)
	}
	return nil
}

// validateNewTransaction checks a transaction before anything is written.
func validateNewTransaction(txn model.NewTransaction) error {
	if txn.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidTransaction, txn.Amount)
	}
	if !txn.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, txn.Type)
	}
	if err := validateID(txn.CategoryID, "categoryID"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
	}
	return nil
}
