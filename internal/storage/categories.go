package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattn/go-sqlite3"

	"github.com/Veraticus/dompet/internal/common"
	"github.com/Veraticus/dompet/internal/model"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (model.Category, error) {
	var (
		cat       model.Category
		createdAt string
	)
	if err := row.Scan(&cat.ID, &cat.Name, &createdAt); err != nil {
		return model.Category{}, err
	}
	cat.CreatedAt = parseTimestamp(createdAt)
	return cat, nil
}

// ListCategories returns all categories ordered by name.
func (e executor) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := e.q.QueryContext(ctx, `
		SELECT id, name, COALESCE(created_at, '')
		FROM categories
		ORDER BY name COLLATE NOCASE ASC, id ASC`)
	if err != nil {
		return nil, storageErr("query categories", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, storageErr("scan category", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate categories", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByID returns the category with the given id or ErrCategoryNotFound.
func (e executor) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	cat, err := scanCategory(e.q.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(created_at, '') FROM categories WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrCategoryNotFound, id)
	}
	if err != nil {
		return nil, storageErr("query category", err)
	}
	return &cat, nil
}

// GetCategoryByName returns a category by its name, ignoring case.
// It returns nil without an error when no category matches.
func (e executor) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	name = model.NormalizeName(name)
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	cat, err := scanCategory(e.q.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(created_at, '') FROM categories WHERE name = ? COLLATE NOCASE LIMIT 1`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Category not found
	}
	if err != nil {
		return nil, storageErr("query category", err)
	}
	return &cat, nil
}

// CreateCategory creates a category and returns its id. It is idempotent by
// name: when a category with the same name in any case exists, its id is
// returned and nothing is written.
func (e executor) CreateCategory(ctx context.Context, name string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	name = model.NormalizeName(name)
	if err := validateString(name, "name"); err != nil {
		return 0, err
	}

	result, err := e.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO categories (name, created_at) VALUES (?, ?)`,
		name, formatTimestamp(e.now()))
	if err != nil {
		return 0, storageErr("create category", err)
	}

	if inserted, _ := result.RowsAffected(); inserted > 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return 0, storageErr("get category ID", err)
		}
		slog.InfoContext(ctx, "created new category", "name", name, "id", id)
		return id, nil
	}

	existing, err := e.GetCategoryByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, storageErr("create category", fmt.Errorf("category %q vanished after insert", name))
	}
	return existing.ID, nil
}

// RenameCategory gives a category a new name. It fails with
// common.ErrDuplicateName when another category already uses the name.
func (e executor) RenameCategory(ctx context.Context, id int64, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	name = model.NormalizeName(name)
	if err := validateString(name, "name"); err != nil {
		return err
	}

	current, err := e.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	if current.IsIncome() {
		return ErrReservedCategory
	}

	var clash int64
	err = e.q.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE name = ? COLLATE NOCASE AND id <> ? LIMIT 1`, name, id).Scan(&clash)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %q is used by category %d", common.ErrDuplicateName, name, clash)
	case !errors.Is(err, sql.ErrNoRows):
		return storageErr("check category name", err)
	}

	if _, err := e.q.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`, name, id); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", common.ErrDuplicateName, name)
		}
		return storageErr("rename category", err)
	}

	slog.InfoContext(ctx, "renamed category", "id", id, "from", current.Name, "to", name)
	return nil
}

// DeleteCategory removes an unused category. It fails with
// common.ErrCategoryInUse while any transaction references it.
func (e executor) DeleteCategory(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	current, err := e.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	if current.IsIncome() {
		return ErrReservedCategory
	}

	usage, err := e.CategoryUsage(ctx, id)
	if err != nil {
		return err
	}
	if usage > 0 {
		return fmt.Errorf("%w: %q has %d transactions", common.ErrCategoryInUse, current.Name, usage)
	}

	if _, err := e.q.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return storageErr("delete category", err)
	}

	slog.InfoContext(ctx, "deleted category", "id", id, "name", current.Name)
	return nil
}

// CategoryUsage returns how many transactions reference the category.
func (e executor) CategoryUsage(ctx context.Context, id int64) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(id, "id"); err != nil {
		return 0, err
	}

	var total int
	if err := e.q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM transactions WHERE category_id = ?`, id).Scan(&total); err != nil {
		return 0, storageErr("count category usage", err)
	}
	return total, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
