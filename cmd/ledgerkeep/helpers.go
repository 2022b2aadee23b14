package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ledgerkeep/ledgerkeep/internal/common"
	"github.com/ledgerkeep/ledgerkeep/internal/prefs"
	"github.com/ledgerkeep/ledgerkeep/internal/storage"
)

// openPrefs opens the preference database, runs migrations, and wraps it in
// the preference service. The caller owns closing the returned storage.
func openPrefs(ctx context.Context) (*prefs.Store, *storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: database.path not set and home directory unavailable: %v", common.ErrMissingConfig, err)
		}
		dbPath = filepath.Join(home, ".local", "share", "ledgerkeep", "ledgerkeep.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return prefs.New(store), store, nil
}
