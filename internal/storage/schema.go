package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/dompet/internal/model"
)

var errNewerSchema = errors.New("unsupported schema version")

// EnsureSchema brings the database up to ExpectedSchemaVersion and seeds the
// default categories and the balance row. It is safe to call on every start;
// after a failure, calling it again is the recovery path.
func (s *SQLiteStorage) EnsureSchema(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	version, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	if version < ExpectedSchemaVersion {
		if err := s.backupBeforeMigration(ctx, version); err != nil {
			return err
		}
	}

	if err := s.Migrate(ctx); err != nil {
		return err
	}

	return s.seedDefaults(ctx)
}

// seedDefaults inserts the default categories and the balance row when absent.
// Existing rows are never overwritten.
func (s *SQLiteStorage) seedDefaults(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}

	createdAt := formatTimestamp(s.now())
	seeded := 0
	for _, name := range model.DefaultCategories {
		result, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO categories (name, created_at) VALUES (?, ?)`,
			name, createdAt)
		if err != nil {
			_ = tx.Rollback()
			return storageErr(fmt.Sprintf("seed category %q", name), err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			seeded++
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO wallet_balance (id, amount) VALUES (1, 0)`); err != nil {
		_ = tx.Rollback()
		return storageErr("seed wallet balance", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit seed data", err)
	}

	if seeded > 0 {
		slog.InfoContext(ctx, "Seeded default categories", "count", seeded)
	}
	return nil
}

// hasTables reports whether the database already holds any user table.
func (s *SQLiteStorage) hasTables(ctx context.Context) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`,
	).Scan(&count)
	if err != nil {
		return false, storageErr("inspect schema", err)
	}
	return count > 0, nil
}
