package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/dompet/internal/common"
	"github.com/Veraticus/dompet/internal/model"
)

func categoryNames(cats []model.Category) []string {
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return names
}

func TestCategories_SeededDefaults(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	cats, err := store.ListCategories(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, model.DefaultCategories, categoryNames(cats))

	for _, c := range cats {
		assert.True(t, c.CreatedAt.Equal(testNow), "category %s created at %v", c.Name, c.CreatedAt)
	}
}

func TestCategories_ListOrderedByName(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	mustCategory(t, store, "zakat")
	mustCategory(t, store, "Anak")

	cats, err := store.ListCategories(context.Background())
	require.NoError(t, err)

	names := categoryNames(cats)
	assert.Equal(t, "Anak", names[0])
	assert.Equal(t, "zakat", names[len(names)-1])
}

func TestCategories_CreateIdempotentByName(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	first, err := store.CreateCategory(ctx, "Kopi")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{name: "same case", input: "Kopi"},
		{name: "different case", input: "KOPI"},
		{name: "surrounding whitespace", input: "  kopi "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := store.CreateCategory(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, first, id)
		})
	}

	cats, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, len(model.DefaultCategories)+1)
}

func TestCategories_CreateRejectsBlank(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.CreateCategory(context.Background(), "   ")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestCategories_GetByName(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	cat, err := store.GetCategoryByName(ctx, "bensin")
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, "Bensin", cat.Name)

	missing, err := store.GetCategoryByName(ctx, "Liburan")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCategories_GetByIDNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetCategoryByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCategories_Rename(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id := mustCategory(t, store, "Kopi")
	other := mustCategory(t, store, "Teh")
	income, err := store.GetCategoryByName(ctx, model.IncomeCategoryName)
	require.NoError(t, err)
	require.NotNil(t, income)

	tests := []struct {
		wantErr error
		name    string
		newName string
		id      int64
	}{
		{name: "rename to new name", id: id, newName: "Kopi Susu"},
		{name: "case only change of own name", id: id, newName: "KOPI SUSU"},
		{name: "clash with another category", id: other, newName: "kopi susu", wantErr: common.ErrDuplicateName},
		{name: "blank name", id: id, newName: " ", wantErr: common.ErrInvalidInput},
		{name: "unknown category", id: 9999, newName: "Apa", wantErr: common.ErrNotFound},
		{name: "income category is reserved", id: income.ID, newName: "Gaji", wantErr: ErrReservedCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.RenameCategory(ctx, tt.id, tt.newName)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			cat, err := store.GetCategoryByID(ctx, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.newName, cat.Name)
		})
	}
}

func TestCategories_RenameShowsInTransactions(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id := mustCategory(t, store, "Kopi")
	txnID, err := store.CreateTransaction(ctx, model.NewTransaction{
		CategoryID: id,
		Amount:     18000,
		Type:       model.DirectionOut,
	})
	require.NoError(t, err)

	require.NoError(t, store.RenameCategory(ctx, id, "Ngopi"))

	txn, err := store.GetTransaction(ctx, txnID)
	require.NoError(t, err)
	assert.Equal(t, "Ngopi", txn.Category)
}

func TestCategories_Delete(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	unused := mustCategory(t, store, "Liburan")
	used := mustCategory(t, store, "Kopi")
	txnID, err := store.CreateTransaction(ctx, model.NewTransaction{
		CategoryID: used,
		Amount:     18000,
		Type:       model.DirectionOut,
	})
	require.NoError(t, err)

	income, err := store.GetCategoryByName(ctx, model.IncomeCategoryName)
	require.NoError(t, err)

	t.Run("unused category is removed", func(t *testing.T) {
		require.NoError(t, store.DeleteCategory(ctx, unused))
		_, err := store.GetCategoryByID(ctx, unused)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("referenced category is kept", func(t *testing.T) {
		err := store.DeleteCategory(ctx, used)
		assert.ErrorIs(t, err, common.ErrCategoryInUse)

		usage, err := store.CategoryUsage(ctx, used)
		require.NoError(t, err)
		assert.Equal(t, 1, usage)
	})

	t.Run("category is freed once its transaction is gone", func(t *testing.T) {
		require.NoError(t, store.DeleteTransaction(ctx, txnID))
		require.NoError(t, store.DeleteCategory(ctx, used))

		_, err := store.GetCategoryByID(ctx, used)
		assert.ErrorIs(t, err, common.ErrNotFound)
		cat, err := store.GetCategoryByName(ctx, "Kopi")
		require.NoError(t, err)
		assert.Nil(t, cat)
	})

	t.Run("income category is reserved", func(t *testing.T) {
		assert.ErrorIs(t, store.DeleteCategory(ctx, income.ID), ErrReservedCategory)
	})

	t.Run("unknown category", func(t *testing.T) {
		assert.ErrorIs(t, store.DeleteCategory(ctx, 9999), common.ErrNotFound)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		`INSERT INTO categories (name, created_at) VALUES ('makan', '')`)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isUniqueViolation(assert.AnError))
}
