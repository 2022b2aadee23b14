package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

// GetMapping retrieves a raw data mapping by normalized key. Returns
// (nil, nil) on a lookup miss.
func (s *SQLiteStorage) GetMapping(ctx context.Context, key string) (*model.RawMapping, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	var mapping model.RawMapping
	var lastUsed sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT raw_merchant, location, merchant_name, auto_apply, created_at, last_used, use_count
		FROM raw_mappings
		WHERE key = ?
	`, key).Scan(
		&mapping.RawMerchant,
		&mapping.Location,
		&mapping.MerchantName,
		&mapping.AutoApply,
		&mapping.CreatedAt,
		&lastUsed,
		&mapping.UseCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get raw mapping: %w", err)
	}
	if lastUsed.Valid {
		mapping.LastUsed = lastUsed.Time
	}
	return &mapping, nil
}

// SaveMapping upserts a raw data mapping.
func (s *SQLiteStorage) SaveMapping(ctx context.Context, key string, mapping *model.RawMapping) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if err := validateMapping(mapping); err != nil {
		return err
	}

	if mapping.CreatedAt.IsZero() {
		mapping.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO raw_mappings (key, raw_merchant, location, merchant_name, auto_apply, created_at, last_used, use_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			raw_merchant = excluded.raw_merchant,
			location = excluded.location,
			merchant_name = excluded.merchant_name,
			auto_apply = excluded.auto_apply,
			last_used = excluded.last_used,
			use_count = excluded.use_count
	`, key, mapping.RawMerchant, mapping.Location, mapping.MerchantName,
		mapping.AutoApply, mapping.CreatedAt, nullableTime(mapping.LastUsed), mapping.UseCount)
	if err != nil {
		return fmt.Errorf("failed to save raw mapping: %w", err)
	}
	return nil
}

// DeleteMapping removes a raw data mapping.
func (s *SQLiteStorage) DeleteMapping(ctx context.Context, key string) error {
	return s.deleteByKey(ctx, "raw_mappings", "key", key)
}

// ListMappings returns all raw data mappings keyed by normalized identity.
func (s *SQLiteStorage) ListMappings(ctx context.Context) (map[string]model.RawMapping, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, raw_merchant, location, merchant_name, auto_apply, created_at, last_used, use_count
		FROM raw_mappings
		ORDER BY key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw mappings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	mappings := make(map[string]model.RawMapping)
	for rows.Next() {
		var key string
		var mapping model.RawMapping
		var lastUsed sql.NullTime
		if err := rows.Scan(&key, &mapping.RawMerchant, &mapping.Location,
			&mapping.MerchantName, &mapping.AutoApply, &mapping.CreatedAt,
			&lastUsed, &mapping.UseCount); err != nil {
			return nil, fmt.Errorf("failed to scan raw mapping: %w", err)
		}
		if lastUsed.Valid {
			mapping.LastUsed = lastUsed.Time
		}
		mappings[key] = mapping
	}
	return mappings, rows.Err()
}

// ClearMappings removes every raw data mapping and merchant-level
// preference flag.
func (s *SQLiteStorage) ClearMappings(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM raw_mappings`); err != nil {
			return fmt.Errorf("failed to clear raw mappings: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM merchant_preferences`); err != nil {
			return fmt.Errorf("failed to clear merchant preferences: %w", err)
		}
		return nil
	})
}

// GetAutoApplyMerchant reports the merchant-level auto-apply flag.
func (s *SQLiteStorage) GetAutoApplyMerchant(ctx context.Context, merchantName string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(merchantName, "merchantName"); err != nil {
		return false, err
	}

	var autoApply bool
	err := s.db.QueryRowContext(ctx, `
		SELECT auto_apply FROM merchant_preferences WHERE merchant_name = ?
	`, merchantName).Scan(&autoApply)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get auto-apply flag: %w", err)
	}
	return autoApply, nil
}

// SetAutoApplyMerchant sets the merchant-level auto-apply flag.
func (s *SQLiteStorage) SetAutoApplyMerchant(ctx context.Context, merchantName string, autoApply bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(merchantName, "merchantName"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO merchant_preferences (merchant_name, auto_apply)
		VALUES (?, ?)
		ON CONFLICT(merchant_name) DO UPDATE SET auto_apply = excluded.auto_apply
	`, merchantName, autoApply)
	if err != nil {
		return fmt.Errorf("failed to set auto-apply flag: %w", err)
	}
	return nil
}
