package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/dompet/internal/common"
)

// Backup writes a consistent copy of the database to destPath.
// The destination must not exist yet.
func (s *SQLiteStorage) Backup(ctx context.Context, destPath string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(destPath, "destPath"); err != nil {
		return err
	}

	if _, err := os.Stat(destPath); err == nil {
		return fmt.Errorf("%w: backup destination %s already exists", common.ErrInvalidInput, destPath)
	} else if !os.IsNotExist(err) {
		return storageErr("inspect backup destination", err)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0750); err != nil {
		return storageErr("create backup directory", err)
	}

	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, destPath); err != nil {
		return storageErr("back up database", err)
	}

	slog.InfoContext(ctx, "Database backed up", "path", destPath)
	return nil
}

// backupBeforeMigration copies an existing database aside before its schema changes.
// Fresh and in-memory databases have nothing worth keeping.
func (s *SQLiteStorage) backupBeforeMigration(ctx context.Context, fromVersion int) error {
	if isMemoryPath(s.dbPath) {
		return nil
	}

	existing, err := s.hasTables(ctx)
	if err != nil || !existing {
		return err
	}

	dest := fmt.Sprintf("%s.v%d-%s.bak", s.dbPath, fromVersion, s.now().UTC().Format("20060102T150405"))
	if _, err := os.Stat(dest); err == nil {
		// A retried start within the same second already made this copy.
		return nil
	}
	if err := s.Backup(ctx, dest); err != nil {
		return fmt.Errorf("failed to back up database before migration: %w", err)
	}
	return nil
}
