package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/dompet/internal/model"
)

// transactionColumns resolves the display category from the categories table
// first, then the legacy free-text column, then the uncategorized label.
const transactionColumns = `
	t.id,
	COALESCE(t.category_id, 0),
	COALESCE(c.name, NULLIF(TRIM(t.category), ''), ?),
	t.amount,
	t.date,
	UPPER(COALESCE(NULLIF(TRIM(t.type), ''), 'OUT')),
	COALESCE(t.description, '')`

func scanTransaction(row scanner) (model.Transaction, error) {
	var (
		txn       model.Transaction
		direction string
	)
	if err := row.Scan(
		&txn.ID,
		&txn.CategoryID,
		&txn.Category,
		&txn.Amount,
		&txn.Date,
		&direction,
		&txn.Description,
	); err != nil {
		return model.Transaction{}, err
	}
	txn.Type = model.Direction(direction)
	return txn, nil
}

// ListTransactions returns every transaction, newest first.
func (e executor) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := e.q.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		ORDER BY t.id DESC`, model.UncategorizedLabel)
	if err != nil {
		return nil, storageErr("query transactions", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, storageErr("scan transaction", err)
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate transactions", err)
	}

	slog.Debug("retrieved transactions", "count", len(transactions))
	return transactions, nil
}

// GetTransaction returns a single transaction or ErrTransactionNotFound.
func (e executor) GetTransaction(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	txn, err := scanTransaction(e.q.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.id = ?`, model.UncategorizedLabel, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrTransactionNotFound, id)
	}
	if err != nil {
		return nil, storageErr("query transaction", err)
	}
	return &txn, nil
}

// CreateTransaction inserts a transaction and returns its id. The category
// must exist; its current name is copied into the legacy category column.
// A zero Date records the current time.
func (e executor) CreateTransaction(ctx context.Context, txn model.NewTransaction) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateNewTransaction(txn); err != nil {
		return 0, err
	}

	cat, err := e.GetCategoryByID(ctx, txn.CategoryID)
	if err != nil {
		return 0, err
	}

	date := txn.Date
	if date.IsZero() {
		date = e.now()
	}

	result, err := e.q.ExecContext(ctx, `
		INSERT INTO transactions (category, category_id, amount, date, type, description)
		VALUES (?, ?, ?, ?, ?, ?)`,
		cat.Name, cat.ID, txn.Amount, formatTimestamp(date), string(txn.Type), txn.Description)
	if err != nil {
		return 0, storageErr("insert transaction", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, storageErr("get transaction ID", err)
	}

	slog.DebugContext(ctx, "created transaction",
		"id", id, "type", txn.Type, "amount", txn.Amount, "category", cat.Name)
	return id, nil
}

// DeleteTransaction removes a transaction by id.
func (e executor) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := e.q.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return storageErr("delete transaction", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageErr("get rows affected", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrTransactionNotFound, id)
	}
	return nil
}

// Totals returns the summed amounts of incoming and outgoing transactions.
// Rows with an empty type count as outgoing.
func (e executor) Totals(ctx context.Context) (in, out int64, err error) {
	if err := validateContext(ctx); err != nil {
		return 0, 0, err
	}

	err = e.q.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN UPPER(TRIM(type)) = 'IN' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN UPPER(TRIM(type)) = 'IN' THEN 0 ELSE amount END), 0)
		FROM transactions`).Scan(&in, &out)
	if err != nil {
		return 0, 0, storageErr("sum transactions", err)
	}
	return in, out, nil
}
