package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ledgerkeep/ledgerkeep/internal/common"
	"github.com/ledgerkeep/ledgerkeep/internal/merchant"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. Failing to reach it is fatal.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial preference namespaces",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS custom_names (
					key TEXT PRIMARY KEY,
					raw_merchant TEXT NOT NULL,
					location TEXT NOT NULL DEFAULT '',
					custom_name TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					last_used DATETIME,
					use_count INTEGER DEFAULT 0
				)`,

				`CREATE TABLE IF NOT EXISTS merchant_history (
					key TEXT PRIMARY KEY,
					original_name TEXT NOT NULL,
					most_common_category TEXT,
					most_common_subcategory TEXT,
					confidence REAL DEFAULT 0
				)`,
				`CREATE TABLE IF NOT EXISTS merchant_history_choices (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					history_key TEXT NOT NULL,
					position INTEGER NOT NULL,
					category TEXT NOT NULL,
					subcategory TEXT NOT NULL DEFAULT '',
					account_type TEXT NOT NULL DEFAULT '',
					txn_type TEXT NOT NULL DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (history_key) REFERENCES merchant_history(key)
				)`,
				`CREATE INDEX idx_history_choices_key ON merchant_history_choices(history_key)`,

				`CREATE TABLE IF NOT EXISTS merchant_defaults (
					key TEXT PRIMARY KEY,
					merchant TEXT NOT NULL,
					main_default_name TEXT NOT NULL DEFAULT ''
				)`,
				`CREATE TABLE IF NOT EXISTS named_defaults (
					merchant_key TEXT NOT NULL,
					name TEXT NOT NULL,
					position INTEGER NOT NULL,
					source TEXT NOT NULL DEFAULT 'named',
					category TEXT NOT NULL,
					subcategory TEXT NOT NULL DEFAULT '',
					notes TEXT NOT NULL DEFAULT '',
					txn_type TEXT NOT NULL DEFAULT '',
					is_recurring INTEGER DEFAULT 0,
					confidence REAL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					last_used DATETIME,
					use_count INTEGER DEFAULT 0,
					PRIMARY KEY (merchant_key, name),
					FOREIGN KEY (merchant_key) REFERENCES merchant_defaults(key)
				)`,

				`CREATE TABLE IF NOT EXISTS raw_mappings (
					key TEXT PRIMARY KEY,
					raw_merchant TEXT NOT NULL,
					location TEXT NOT NULL DEFAULT '',
					merchant_name TEXT NOT NULL,
					auto_apply INTEGER DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					last_used DATETIME,
					use_count INTEGER DEFAULT 0
				)`,
				`CREATE INDEX idx_raw_mappings_merchant ON raw_mappings(merchant_name)`,

				`CREATE TABLE IF NOT EXISTS merchant_preferences (
					merchant_name TEXT PRIMARY KEY,
					auto_apply INTEGER DEFAULT 0,
					default_category TEXT,
					default_subcategory TEXT,
					default_confidence REAL DEFAULT 0
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Adapt legacy merchant preferences into named defaults",
		Up: func(tx *sql.Tx) error {
			rows, err := tx.Query(`
				SELECT merchant_name, default_category, COALESCE(default_subcategory, ''), default_confidence
				FROM merchant_preferences
				WHERE default_category IS NOT NULL AND default_category != ''
			`)
			if err != nil {
				return fmt.Errorf("failed to read legacy preferences: %w", err)
			}
			defer func() { _ = rows.Close() }()

			type legacyPref struct {
				merchantName string
				category     string
				subCategory  string
				confidence   float64
			}
			var prefs []legacyPref
			for rows.Next() {
				var p legacyPref
				if err := rows.Scan(&p.merchantName, &p.category, &p.subCategory, &p.confidence); err != nil {
					return fmt.Errorf("failed to scan legacy preference: %w", err)
				}
				prefs = append(prefs, p)
			}
			if err := rows.Err(); err != nil {
				return err
			}

			for _, p := range prefs {
				key := merchant.Normalize(p.merchantName, "")
				if _, err := tx.Exec(`
					INSERT INTO merchant_defaults (key, merchant) VALUES (?, ?)
					ON CONFLICT(key) DO NOTHING
				`, key, p.merchantName); err != nil {
					return fmt.Errorf("failed to ensure merchant defaults row: %w", err)
				}
				if _, err := tx.Exec(`
					INSERT INTO named_defaults (merchant_key, name, position, source, category, subcategory, confidence)
					VALUES (?, 'Legacy Preference',
						COALESCE((SELECT MAX(position) + 1 FROM named_defaults WHERE merchant_key = ?), 0),
						'legacy', ?, ?, ?)
					ON CONFLICT(merchant_key, name) DO UPDATE SET
						category = excluded.category,
						subcategory = excluded.subcategory,
						confidence = excluded.confidence
				`, key, key, p.category, p.subCategory, p.confidence); err != nil {
					return fmt.Errorf("failed to adapt legacy preference: %w", err)
				}
			}

			// Rebuild merchant_preferences with only the auto-apply flag.
			rebuild := []string{
				`CREATE TABLE merchant_preferences_new (
					merchant_name TEXT PRIMARY KEY,
					auto_apply INTEGER DEFAULT 0
				)`,
				`INSERT INTO merchant_preferences_new (merchant_name, auto_apply)
					SELECT merchant_name, auto_apply FROM merchant_preferences`,
				`DROP TABLE merchant_preferences`,
				`ALTER TABLE merchant_preferences_new RENAME TO merchant_preferences`,
			}
			for _, query := range rebuild {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to rebuild merchant_preferences: %w", err)
				}
			}

			if len(prefs) > 0 {
				common.LogInfo("Adapted legacy merchant preferences", common.Fields{"count": len(prefs)})
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		common.LogInfo("Applied migration", common.Fields{
			"version":     migration.Version,
			"description": migration.Description,
		})
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
