package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/dompet/internal/common"
	"github.com/Veraticus/dompet/internal/config"
	"github.com/Veraticus/dompet/internal/ledger"
	"github.com/Veraticus/dompet/internal/storage"
)

// app bundles everything a command needs once the database is open.
type app struct {
	cfg    *config.Config
	store  *storage.SQLiteStorage
	ledger *ledger.Ledger
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
}

// openStorage opens the configured database without touching its schema.
func openStorage() (*storage.SQLiteStorage, *config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, common.Explain(err)
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, cfg, nil
}

// openApp opens the database, brings the schema up to date and builds the ledger.
func openApp(ctx context.Context) (*app, error) {
	store, cfg, err := openStorage()
	if err != nil {
		return nil, err
	}

	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to prepare database: %w", err)
	}

	return &app{
		cfg:    cfg,
		store:  store,
		ledger: ledger.New(store, ledger.WithOverdraft(cfg.AllowOverdraft)),
	}, nil
}

// parseID reads a positive numeric id argument.
func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("%s must be a positive number, got %q", what, raw), common.ErrInvalidInput)
	}
	return id, nil
}
