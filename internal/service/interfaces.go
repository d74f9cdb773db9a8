// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/dompet/internal/model"
)

// Store is the persistence contract shared by the database and an open database transaction.
type Store interface {
	// Category operations
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, name string) (int64, error)
	RenameCategory(ctx context.Context, id int64, name string) error
	DeleteCategory(ctx context.Context, id int64) error
	CategoryUsage(ctx context.Context, id int64) (int, error)

	// Transaction operations
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*model.Transaction, error)
	CreateTransaction(ctx context.Context, txn model.NewTransaction) (int64, error)
	DeleteTransaction(ctx context.Context, id int64) error
	Totals(ctx context.Context) (in, out int64, err error)

	// Balance operations
	GetBalance(ctx context.Context) (int64, error)
	AdjustBalance(ctx context.Context, delta int64) error
	SetBalance(ctx context.Context, amount int64) error
}

// Storage is a Store backed by a database that can run work atomically.
type Storage interface {
	Store

	// EnsureSchema creates and migrates tables and seeds defaults. It is idempotent.
	EnsureSchema(ctx context.Context) error
	// WithTx runs fn inside a single database transaction. The transaction
	// commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(Store) error) error
	Close() error
}
