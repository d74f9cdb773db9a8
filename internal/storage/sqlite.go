package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/dompet/internal/common"
	"github.com/Veraticus/dompet/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// isoLayout matches the millisecond UTC timestamps written by earlier versions of the app.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// querier is the subset of *sql.DB and *sql.Tx used by the store operations.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// executor implements service.Store on top of a querier, so the same code
// serves both plain connections and open transactions.
type executor struct {
	q   querier
	now func() time.Time
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	executor
	db     *sql.DB
	dbPath string
}

// Option configures a SQLiteStorage.
type Option func(*SQLiteStorage)

// WithClock overrides the clock used for default transaction dates and creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStorage) {
		s.now = now
	}
}

// NewSQLiteStorage creates a new SQLite storage instance.
// The schema is not touched until EnsureSchema is called.
func NewSQLiteStorage(dbPath string, opts ...Option) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if !isMemoryPath(dbPath) {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, storageErr("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, storageErr("open database", err)
	}

	// A single connection keeps every statement sequential.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, storageErr("ping database", err)
	}

	s := &SQLiteStorage{
		executor: executor{q: db, now: time.Now},
		db:       db,
		dbPath:   dbPath,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// WithTx runs fn inside a single database transaction. Nothing fn wrote is
// kept unless fn returns nil and the commit succeeds.
func (s *SQLiteStorage) WithTx(ctx context.Context, fn func(service.Store) error) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}

	txStore := &sqliteTransaction{
		executor: executor{q: tx, now: s.now},
	}

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.WarnContext(ctx, "failed to roll back transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}
	return nil
}

// sqliteTransaction exposes the store operations bound to an open sql.Tx.
type sqliteTransaction struct {
	executor
}

var (
	_ service.Storage = (*SQLiteStorage)(nil)
	_ service.Store   = (*sqliteTransaction)(nil)
)

// storageErr wraps an engine failure so callers can match common.ErrStorage.
func storageErr(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, common.ErrStorage, err)
}

func isMemoryPath(path string) bool {
	return path == ":memory:" || (len(path) >= 13 && path[:13] == "file::memory:")
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func parseTimestamp(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		slog.Debug("unparseable timestamp", "value", raw)
		return time.Time{}
	}
	return t
}
