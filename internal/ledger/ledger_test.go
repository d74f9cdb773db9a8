package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/dompet/internal/common"
	"github.com/Veraticus/dompet/internal/model"
	"github.com/Veraticus/dompet/internal/service"
	"github.com/Veraticus/dompet/internal/storage"
	"github.com/Veraticus/dompet/internal/testutil"
)

func createTestLedger(t *testing.T, opts ...Option) (*Ledger, *storage.SQLiteStorage) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return New(db.Storage, opts...), db.Storage
}

func categoryID(t *testing.T, store service.Store, name string) int64 {
	t.Helper()
	id, err := store.CreateCategory(context.Background(), name)
	require.NoError(t, err)
	return id
}

// assertBalanced checks that the stored balance equals incoming minus outgoing.
func assertBalanced(t *testing.T, l *Ledger) {
	t.Helper()
	r, err := l.Reconcile(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, r.Balanced(), "stored %d, expected %d", r.Stored, r.Expected)
}

func TestRecordIncome(t *testing.T) {
	l, store := createTestLedger(t)
	ctx := context.Background()

	when := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	txn, err := l.RecordIncome(ctx, Entry{Amount: 500000, Date: when, Description: "gaji"})
	require.NoError(t, err)

	assert.Equal(t, model.DirectionIn, txn.Type)
	assert.Equal(t, model.IncomeCategoryName, txn.Category)
	assert.Equal(t, "2024-03-15T08:00:00.000Z", txn.Date)
	assert.Equal(t, "gaji", txn.Description)

	balance, err := store.GetBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(500000), balance)
}

func TestRecordIncome_IgnoresEntryCategory(t *testing.T) {
	l, store := createTestLedger(t)
	ctx := context.Background()

	txn, err := l.RecordIncome(ctx, Entry{Amount: 1, CategoryID: categoryID(t, store, "Makan")})
	require.NoError(t, err)

	income, err := store.GetCategoryByName(ctx, model.IncomeCategoryName)
	require.NoError(t, err)
	require.NotNil(t, income)
	assert.Equal(t, income.ID, txn.CategoryID)
}

func TestRecordExpense_OverdraftRejectedByDefault(t *testing.T) {
	l, store := createTestLedger(t)
	ctx := context.Background()
	makan := categoryID(t, store, "Makan")

	_, err := l.RecordIncome(ctx, Entry{Amount: 10000})
	require.NoError(t, err)

	_, err = l.RecordExpense(ctx, Entry{CategoryID: makan, Amount: 10001})
	require.ErrorIs(t, err, common.ErrInsufficientBalance)

	txns, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txns, 1, "rejected expense must not be written")

	// Spending exactly the balance is allowed.
	_, err = l.RecordExpense(ctx, Entry{CategoryID: makan, Amount: 10000})
	require.NoError(t, err)

	balance, err := store.GetBalance(ctx)
	require.NoError(t, err)
	assert.Zero(t, balance)
	assertBalanced(t, l)
}

func TestRecordExpense_OverdraftAllowed(t *testing.T) {
	l, store := createTestLedger(t, WithOverdraft(true))
	ctx := context.Background()

	txn, err := l.RecordExpense(ctx, Entry{CategoryID: categoryID(t, store, "Bensin"), Amount: 30000})
	require.NoError(t, err)
	assert.Equal(t, model.DirectionOut, txn.Type)

	balance, err := store.GetBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(-30000), balance)
	assertBalanced(t, l)
}

func TestRecordExpense_InvalidInput(t *testing.T) {
	l, store := createTestLedger(t, WithOverdraft(true))
	ctx := context.Background()

	income, err := store.GetCategoryByName(ctx, model.IncomeCategoryName)
	require.NoError(t, err)

	tests := []struct {
		wantErr error
		name    string
		entry   Entry
	}{
		{name: "zero amount", entry: Entry{CategoryID: 1, Amount: 0}, wantErr: common.ErrInvalidInput},
		{name: "negative amount", entry: Entry{CategoryID: 1, Amount: -5}, wantErr: common.ErrInvalidInput},
		{name: "unknown category", entry: Entry{CategoryID: 9999, Amount: 5}, wantErr: common.ErrNotFound},
		{name: "income category", entry: Entry{CategoryID: income.ID, Amount: 5}, wantErr: common.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.RecordExpense(ctx, tt.entry)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	balance, err := store.GetBalance(ctx)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestRecordExpenseInNewCategory(t *testing.T) {
	l, store := createTestLedger(t)
	ctx := context.Background()

	_, err := l.RecordIncome(ctx, Entry{Amount: 100000})
	require.NoError(t, err)

	t.Run("creates the category", func(t *testing.T) {
		txn, err := l.RecordExpenseInNewCategory(ctx, "  Kopi ", Entry{Amount: 20000})
		require.NoError(t, err)
		assert.Equal(t, "Kopi", txn.Category)
	})

	t.Run("reuses an existing category", func(t *testing.T) {
		txn, err := l.RecordExpenseInNewCategory(ctx, "kopi", Entry{Amount: 5000})
		require.NoError(t, err)
		assert.Equal(t, "Kopi", txn.Category)
	})

	t.Run("rejected expense leaves no category behind", func(t *testing.T) {
		_, err := l.RecordExpenseInNewCategory(ctx, "Liburan", Entry{Amount: 1000000})
		require.ErrorIs(t, err, common.ErrInsufficientBalance)

		cat, err := store.GetCategoryByName(ctx, "Liburan")
		require.NoError(t, err)
		assert.Nil(t, cat)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := l.RecordExpenseInNewCategory(ctx, " ", Entry{Amount: 1})
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})

	balance, err := store.GetBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(75000), balance)
	assertBalanced(t, l)
}

func TestDeleteTransaction_ReversesDelta(t *testing.T) {
	l, store := createTestLedger(t)
	ctx := context.Background()
	jajan := categoryID(t, store, "Jajan")

	income, err := l.RecordIncome(ctx, Entry{Amount: 50000})
	require.NoError(t, err)
	expense, err := l.RecordExpense(ctx, Entry{CategoryID: jajan, Amount: 12000})
	require.NoError(t, err)

	deleted, err := l.DeleteTransaction(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.ID, deleted.ID)

	balance, err := store.GetBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), balance)

	_, err = l.DeleteTransaction(ctx, income.ID)
	require.NoError(t, err)

	balance, err = store.GetBalance(ctx)
	require.NoError(t, err)
	assert.Zero(t, balance)

	_, err = l.DeleteTransaction(ctx, income.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestBalance_ConsistentAcrossMixedWrites(t *testing.T) {
	l, store := createTestLedger(t, WithOverdraft(true))
	ctx := context.Background()
	cats := []int64{categoryID(t, store, "Makan"), categoryID(t, store, "Bensin")}

	var live []int64
	for i := 1; i <= 30; i++ {
		var (
			txn *model.Transaction
			err error
		)
		if i%3 == 0 {
			txn, err = l.RecordIncome(ctx, Entry{Amount: int64(i * 1500)})
		} else {
			txn, err = l.RecordExpense(ctx, Entry{CategoryID: cats[i%2], Amount: int64(i * 700)})
		}
		require.NoError(t, err)
		live = append(live, txn.ID)

		if i%4 == 0 {
			victim := live[len(live)/2]
			_, err := l.DeleteTransaction(ctx, victim)
			require.NoError(t, err)
			live = append(live[:len(live)/2], live[len(live)/2+1:]...)
		}
		assertBalanced(t, l)
	}

	snap, err := l.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Transactions, len(live))
	assert.Equal(t, snap.TotalIn-snap.TotalOut, snap.Balance)
}

func TestSnapshot(t *testing.T) {
	l, store := createTestLedger(t)
	ctx := context.Background()

	_, err := l.RecordIncome(ctx, Entry{Amount: 90000})
	require.NoError(t, err)
	_, err = l.RecordExpense(ctx, Entry{CategoryID: categoryID(t, store, "Tagihan"), Amount: 40000})
	require.NoError(t, err)

	snap, err := l.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Transactions, 2)
	assert.Len(t, snap.Categories, len(model.DefaultCategories))
	assert.Equal(t, int64(50000), snap.Balance)
	assert.Equal(t, int64(90000), snap.TotalIn)
	assert.Equal(t, int64(40000), snap.TotalOut)
}

// failingStorage wraps a real storage and fails balance adjustments made
// inside transactions.
type failingStorage struct {
	service.Storage
}

type failingStore struct {
	service.Store
}

var errAdjust = errors.New("disk full")

func (f failingStore) AdjustBalance(context.Context, int64) error {
	return errAdjust
}

func (f failingStorage) WithTx(ctx context.Context, fn func(service.Store) error) error {
	return f.Storage.WithTx(ctx, func(tx service.Store) error {
		return fn(failingStore{Store: tx})
	})
}

func TestRecord_RollsBackWhenBalanceUpdateFails(t *testing.T) {
	_, store := createTestLedger(t)
	ctx := context.Background()
	l := New(failingStorage{Storage: store}, WithOverdraft(true))

	_, err := l.RecordIncome(ctx, Entry{Amount: 1000})
	require.ErrorIs(t, err, errAdjust)

	_, err = l.RecordExpenseInNewCategory(ctx, "Parkir", Entry{Amount: 2000})
	require.ErrorIs(t, err, errAdjust)

	txns, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txns)

	cat, err := store.GetCategoryByName(ctx, "Parkir")
	require.NoError(t, err)
	assert.Nil(t, cat)
}

func TestDelete_RollsBackWhenBalanceUpdateFails(t *testing.T) {
	healthy, store := createTestLedger(t)
	ctx := context.Background()

	txn, err := healthy.RecordIncome(ctx, Entry{Amount: 1000})
	require.NoError(t, err)

	l := New(failingStorage{Storage: store})
	_, err = l.DeleteTransaction(ctx, txn.ID)
	require.ErrorIs(t, err, errAdjust)

	_, err = store.GetTransaction(ctx, txn.ID)
	require.NoError(t, err, "transaction must survive a failed delete")
	assertBalanced(t, healthy)
}

// unseededStore behaves like a database whose income category was never seeded.
type unseededStore struct {
	service.Store
	created *[]string
}

func (s unseededStore) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if model.SameName(name, model.IncomeCategoryName) {
		return nil, nil
	}
	return s.Store.GetCategoryByName(ctx, name)
}

func (s unseededStore) CreateCategory(ctx context.Context, name string) (int64, error) {
	*s.created = append(*s.created, name)
	return s.Store.CreateCategory(ctx, name)
}

func TestRecordIncome_RequiresSeededCategory(t *testing.T) {
	_, store := createTestLedger(t)
	ctx := context.Background()

	var created []string
	l := New(storageFunc{Storage: store, wrap: func(tx service.Store) service.Store {
		return unseededStore{Store: tx, created: &created}
	}})

	_, err := l.RecordIncome(ctx, Entry{Amount: 1000})
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Empty(t, created, "income must not create categories")

	txns, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txns)

	balance, err := store.GetBalance(ctx)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

// storageFunc wraps every transaction store handed to the ledger.
type storageFunc struct {
	service.Storage
	wrap func(service.Store) service.Store
}

func (s storageFunc) WithTx(ctx context.Context, fn func(service.Store) error) error {
	return s.Storage.WithTx(ctx, func(tx service.Store) error {
		return fn(s.wrap(tx))
	})
}
