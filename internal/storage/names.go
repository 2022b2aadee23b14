package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

// GetCustomName retrieves a custom merchant name entry by normalized key.
// Returns (nil, nil) when no entry exists.
func (s *SQLiteStorage) GetCustomName(ctx context.Context, key string) (*model.CustomName, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	var entry model.CustomName
	var lastUsed sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT raw_merchant, location, custom_name, created_at, last_used, use_count
		FROM custom_names
		WHERE key = ?
	`, key).Scan(
		&entry.RawMerchant,
		&entry.Location,
		&entry.CustomName,
		&entry.CreatedAt,
		&lastUsed,
		&entry.UseCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get custom name: %w", err)
	}
	if lastUsed.Valid {
		entry.LastUsed = lastUsed.Time
	}
	return &entry, nil
}

// SaveCustomName upserts a custom merchant name entry.
func (s *SQLiteStorage) SaveCustomName(ctx context.Context, key string, entry *model.CustomName) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if err := validateCustomName(entry); err != nil {
		return err
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO custom_names (key, raw_merchant, location, custom_name, created_at, last_used, use_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			raw_merchant = excluded.raw_merchant,
			location = excluded.location,
			custom_name = excluded.custom_name,
			last_used = excluded.last_used,
			use_count = excluded.use_count
	`, key, entry.RawMerchant, entry.Location, entry.CustomName,
		entry.CreatedAt, nullableTime(entry.LastUsed), entry.UseCount)
	if err != nil {
		return fmt.Errorf("failed to save custom name: %w", err)
	}
	return nil
}

// DeleteCustomName removes a custom name entry. Deleting a missing entry
// returns common.ErrNotFound via deleteByKey.
func (s *SQLiteStorage) DeleteCustomName(ctx context.Context, key string) error {
	return s.deleteByKey(ctx, "custom_names", "key", key)
}

// ListCustomNames returns all custom name entries keyed by normalized
// identity.
func (s *SQLiteStorage) ListCustomNames(ctx context.Context) (map[string]model.CustomName, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, raw_merchant, location, custom_name, created_at, last_used, use_count
		FROM custom_names
		ORDER BY key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom names: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make(map[string]model.CustomName)
	for rows.Next() {
		var key string
		var entry model.CustomName
		var lastUsed sql.NullTime
		if err := rows.Scan(&key, &entry.RawMerchant, &entry.Location, &entry.CustomName,
			&entry.CreatedAt, &lastUsed, &entry.UseCount); err != nil {
			return nil, fmt.Errorf("failed to scan custom name: %w", err)
		}
		if lastUsed.Valid {
			entry.LastUsed = lastUsed.Time
		}
		entries[key] = entry
	}
	return entries, rows.Err()
}

// ClearCustomNames removes every custom name entry.
func (s *SQLiteStorage) ClearCustomNames(ctx context.Context) error {
	return s.clearTable(ctx, "custom_names")
}

// nullableTime converts a zero time to NULL for storage.
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
