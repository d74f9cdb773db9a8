package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 8

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

// Databases written before the version counter existed already hold some of
// these tables, so every step is additive and tolerates existing objects.
var migrations = []Migration{
	{
		Version:     1,
		Description: "Create categories table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL UNIQUE COLLATE NOCASE,
					created_at TEXT NOT NULL
				)`)
			return err
		},
	},
	{
		Version:     2,
		Description: "Create transactions table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					category TEXT,
					category_id INTEGER,
					amount INTEGER,
					date TEXT,
					type TEXT NOT NULL DEFAULT 'OUT'
				)`)
			return err
		},
	},
	{
		Version:     3,
		Description: "Add type and category_id to legacy transactions",
		Up: func(tx *sql.Tx) error {
			if err := addColumnIfMissing(tx, "transactions", "type", "TEXT NOT NULL DEFAULT 'OUT'"); err != nil {
				return err
			}
			return addColumnIfMissing(tx, "transactions", "category_id", "INTEGER")
		},
	},
	{
		Version:     4,
		Description: "Add description to transactions",
		Up: func(tx *sql.Tx) error {
			return addColumnIfMissing(tx, "transactions", "description", "TEXT NOT NULL DEFAULT ''")
		},
	},
	{
		Version:     5,
		Description: "Link legacy category labels to categories",
		Up: func(tx *sql.Tx) error {
			created, err := tx.Exec(`
				INSERT OR IGNORE INTO categories (name, created_at)
				SELECT MIN(TRIM(category)), ?
				FROM transactions
				WHERE category_id IS NULL AND category IS NOT NULL AND TRIM(category) <> ''
				  AND NOT EXISTS (
					SELECT 1 FROM categories c
					WHERE c.name = TRIM(transactions.category) COLLATE NOCASE
				  )
				GROUP BY TRIM(category) COLLATE NOCASE`,
				formatTimestamp(time.Now()))
			if err != nil {
				return fmt.Errorf("failed to create categories from labels: %w", err)
			}

			linked, err := tx.Exec(`
				UPDATE transactions
				SET category_id = (
					SELECT c.id FROM categories c
					WHERE c.name = TRIM(transactions.category) COLLATE NOCASE
					LIMIT 1
				)
				WHERE category_id IS NULL AND category IS NOT NULL AND TRIM(category) <> ''`)
			if err != nil {
				return fmt.Errorf("failed to link legacy transactions: %w", err)
			}

			createdCount, _ := created.RowsAffected()
			linkedCount, _ := linked.RowsAffected()
			if createdCount > 0 || linkedCount > 0 {
				slog.Info("Back-filled legacy category labels",
					"categories_created", createdCount,
					"transactions_linked", linkedCount)
			}
			return nil
		},
	},
	{
		Version:     6,
		Description: "Create wallet balance table",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS wallet_balance (
					id INTEGER PRIMARY KEY CHECK(id = 1),
					amount INTEGER NOT NULL DEFAULT 0
				)`,
				`INSERT OR IGNORE INTO wallet_balance (id, amount) VALUES (1, 0)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
	{
		Version:     7,
		Description: "Index transactions by category",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_transactions_category_id ON transactions(category_id)`)
			return err
		},
	},
	{
		// Legacy categories tables were created with a case-sensitive UNIQUE.
		// Case variants are folded into the oldest row before the index goes on.
		Version:     8,
		Description: "Enforce case-insensitive category names",
		Up: func(tx *sql.Tx) error {
			relinked, err := tx.Exec(`
				UPDATE transactions
				SET category_id = (
					SELECT MIN(k.id) FROM categories c, categories k
					WHERE c.id = transactions.category_id AND k.name = c.name COLLATE NOCASE
				)
				WHERE category_id IN (
					SELECT c.id FROM categories c
					WHERE EXISTS (
						SELECT 1 FROM categories k
						WHERE k.name = c.name COLLATE NOCASE AND k.id < c.id
					)
				)`)
			if err != nil {
				return fmt.Errorf("failed to relink duplicate categories: %w", err)
			}

			merged, err := tx.Exec(`
				DELETE FROM categories
				WHERE EXISTS (
					SELECT 1 FROM categories k
					WHERE k.name = categories.name COLLATE NOCASE AND k.id < categories.id
				)`)
			if err != nil {
				return fmt.Errorf("failed to merge duplicate categories: %w", err)
			}

			if _, err := tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(name COLLATE NOCASE)`); err != nil {
				return fmt.Errorf("failed to create category name index: %w", err)
			}

			mergedCount, _ := merged.RowsAffected()
			relinkedCount, _ := relinked.RowsAffected()
			if mergedCount > 0 {
				slog.Info("Merged case-variant categories",
					"categories_merged", mergedCount,
					"transactions_relinked", relinkedCount)
			}
			return nil
		},
	},
}

// addColumnIfMissing adds a column unless a previous app version already created it.
func addColumnIfMissing(tx *sql.Tx, table, column, definition string) error {
	exists, err := columnExists(tx, table, column)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)); err != nil {
		return fmt.Errorf("failed to add column %s.%s: %w", table, column, err)
	}
	slog.Info("Added column", "table", table, "column", column)
	return nil
}

func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Warn("failed to close rows", "error", err)
		}
	}()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, fmt.Errorf("failed to scan column info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}

	return false, rows.Err()
}

// SchemaVersion returns the migration version recorded in the database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, storageErr("get schema version", err)
	}
	return version, nil
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	if currentVersion > ExpectedSchemaVersion {
		return fmt.Errorf("%w: database schema version %d is newer than supported version %d",
			errNewerSchema, currentVersion, ExpectedSchemaVersion)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return storageErr("begin transaction", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return storageErr(fmt.Sprintf("apply migration %d", migration.Version), upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return storageErr("update schema version", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return storageErr(fmt.Sprintf("commit migration %d", migration.Version), commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
