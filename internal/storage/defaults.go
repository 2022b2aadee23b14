package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/common"
	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

// GetDefaults retrieves the defaults record for a merchant key. Returns
// (nil, nil) when the merchant has no presets.
func (s *SQLiteStorage) GetDefaults(ctx context.Context, key string) (*model.MerchantDefaults, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}
	return s.getDefaultsTx(ctx, s.db, key)
}

func (s *SQLiteStorage) getDefaultsTx(ctx context.Context, q queryable, key string) (*model.MerchantDefaults, error) {
	var defaults model.MerchantDefaults
	err := q.QueryRowContext(ctx, `
		SELECT merchant, main_default_name
		FROM merchant_defaults
		WHERE key = ?
	`, key).Scan(&defaults.Merchant, &defaults.MainDefaultName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get merchant defaults: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT name, source, category, subcategory, notes, txn_type, is_recurring,
			confidence, created_at, last_used, use_count
		FROM named_defaults
		WHERE merchant_key = ?
		ORDER BY position
	`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query named defaults: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var d model.Default
		var source string
		var lastUsed sql.NullTime
		if err := rows.Scan(&d.Name, &source, &d.Category, &d.SubCategory, &d.Notes,
			&d.Type, &d.IsRecurring, &d.Confidence, &d.CreatedAt, &lastUsed, &d.UseCount); err != nil {
			return nil, fmt.Errorf("failed to scan named default: %w", err)
		}
		d.Source = model.DefaultSource(source)
		if lastUsed.Valid {
			d.LastUsed = lastUsed.Time
		}
		defaults.Defaults = append(defaults.Defaults, d)
	}
	return &defaults, rows.Err()
}

// SaveDefaults replaces the stored defaults record for a merchant key.
func (s *SQLiteStorage) SaveDefaults(ctx context.Context, key string, defaults *model.MerchantDefaults) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if err := validateDefaults(defaults); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO merchant_defaults (key, merchant, main_default_name)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				merchant = excluded.merchant,
				main_default_name = excluded.main_default_name
		`, key, defaults.Merchant, defaults.MainDefaultName); err != nil {
			return fmt.Errorf("failed to save merchant defaults: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM named_defaults WHERE merchant_key = ?`, key); err != nil {
			return fmt.Errorf("failed to clear named defaults: %w", err)
		}

		for i, d := range defaults.Defaults {
			createdAt := d.CreatedAt
			if createdAt.IsZero() {
				createdAt = time.Now()
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO named_defaults
					(merchant_key, name, position, source, category, subcategory, notes,
					 txn_type, is_recurring, confidence, created_at, last_used, use_count)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, key, d.Name, i, string(d.Source), d.Category, d.SubCategory, d.Notes,
				d.Type, d.IsRecurring, d.Confidence, createdAt,
				nullableTime(d.LastUsed), d.UseCount); err != nil {
				return fmt.Errorf("failed to save named default: %w", err)
			}
		}
		return nil
	})
}

// DeleteDefaults removes a merchant's entire defaults record.
func (s *SQLiteStorage) DeleteDefaults(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM named_defaults WHERE merchant_key = ?`, key); err != nil {
			return fmt.Errorf("failed to delete named defaults: %w", err)
		}
		result, err := tx.ExecContext(ctx,
			`DELETE FROM merchant_defaults WHERE key = ?`, key)
		if err != nil {
			return fmt.Errorf("failed to delete merchant defaults: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			return common.ErrNotFound
		}
		return nil
	})
}

// ListDefaults returns all merchant defaults keyed by normalized name.
func (s *SQLiteStorage) ListDefaults(ctx context.Context) (map[string]model.MerchantDefaults, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key FROM merchant_defaults ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchant defaults: %w", err)
	}
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan defaults key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	all := make(map[string]model.MerchantDefaults, len(keys))
	for _, key := range keys {
		defaults, err := s.getDefaultsTx(ctx, s.db, key)
		if err != nil {
			return nil, err
		}
		if defaults != nil {
			all[key] = *defaults
		}
	}
	return all, nil
}

// ClearDefaults removes every merchant defaults record.
func (s *SQLiteStorage) ClearDefaults(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM named_defaults`); err != nil {
			return fmt.Errorf("failed to clear named defaults: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM merchant_defaults`); err != nil {
			return fmt.Errorf("failed to clear merchant defaults: %w", err)
		}
		return nil
	})
}
