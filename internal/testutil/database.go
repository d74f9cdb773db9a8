// Package testutil provides a seeded wallet database for tests that sit above the storage layer.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/dompet/internal/model"
	"github.com/Veraticus/dompet/internal/service"
	"github.com/Veraticus/dompet/internal/storage"
)

// TestDB is a migrated, file-backed database that lives for one test.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// Option configures SetupTestDB.
type Option func(*options)

type options struct {
	now        func() time.Time
	categories []string
}

// WithClock fixes the time used for created_at values and undated transactions.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithCategories creates extra categories next to the seeded defaults.
func WithCategories(names ...string) Option {
	return func(o *options) { o.categories = append(o.categories, names...) }
}

// SetupTestDB creates a database in the test's temp directory with the schema
// in place. It is closed automatically when the test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.WithCategories("Kopi"))
//	db.Record(model.DirectionIn, model.IncomeCategoryName, 50000, time.Time{})
func SetupTestDB(t *testing.T, opts ...Option) *TestDB {
	t.Helper()

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "wallet.db"), storage.WithClock(o.now))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("failed to prepare schema: %v", err)
	}

	db := &TestDB{Storage: store, t: t}
	for _, name := range o.categories {
		db.MustCategory(name)
	}
	return db
}

// MustCategory returns the id of the named category, creating it if needed.
func (db *TestDB) MustCategory(name string) int64 {
	db.t.Helper()
	id, err := db.Storage.CreateCategory(context.Background(), name)
	if err != nil {
		db.t.Fatalf("failed to create category %q: %v", name, err)
	}
	return id
}

// Record stores a transaction and its balance change together, bypassing
// any ledger policy. A zero date means the database clock.
func (db *TestDB) Record(dir model.Direction, category string, amount int64, date time.Time) model.Transaction {
	db.t.Helper()
	ctx := context.Background()
	categoryID := db.MustCategory(category)

	var txn *model.Transaction
	err := db.Storage.WithTx(ctx, func(tx service.Store) error {
		id, err := tx.CreateTransaction(ctx, model.NewTransaction{
			Date:       date,
			Type:       dir,
			CategoryID: categoryID,
			Amount:     amount,
		})
		if err != nil {
			return err
		}
		if err := tx.AdjustBalance(ctx, dir.Delta(amount)); err != nil {
			return err
		}
		txn, err = tx.GetTransaction(ctx, id)
		return err
	})
	if err != nil {
		db.t.Fatalf("failed to record %s of %d in %q: %v", dir, amount, category, err)
	}
	return *txn
}

// Balance returns the stored wallet balance.
func (db *TestDB) Balance() int64 {
	db.t.Helper()
	balance, err := db.Storage.GetBalance(context.Background())
	if err != nil {
		db.t.Fatalf("failed to read balance: %v", err)
	}
	return balance
}
