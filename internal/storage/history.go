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

// GetHistory retrieves the category history for a merchant key. Returns
// (nil, nil) when the merchant has no recorded history.
func (s *SQLiteStorage) GetHistory(ctx context.Context, key string) (*model.MerchantHistory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}
	return s.getHistoryTx(ctx, s.db, key)
}

func (s *SQLiteStorage) getHistoryTx(ctx context.Context, q queryable, key string) (*model.MerchantHistory, error) {
	var history model.MerchantHistory
	var mcCategory, mcSubCategory sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT original_name, most_common_category, most_common_subcategory, confidence
		FROM merchant_history
		WHERE key = ?
	`, key).Scan(&history.OriginalName, &mcCategory, &mcSubCategory, &history.Confidence)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get merchant history: %w", err)
	}
	if mcCategory.Valid {
		history.MostCommon = &model.CategoryPair{
			Category:    mcCategory.String,
			SubCategory: mcSubCategory.String,
		}
	}

	rows, err := q.QueryContext(ctx, `
		SELECT category, subcategory, account_type, txn_type, created_at
		FROM merchant_history_choices
		WHERE history_key = ?
		ORDER BY position
	`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query history choices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var choice model.CategoryChoice
		if err := rows.Scan(&choice.Category, &choice.SubCategory,
			&choice.AccountType, &choice.Type, &choice.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history choice: %w", err)
		}
		history.Choices = append(history.Choices, choice)
	}
	return &history, rows.Err()
}

// SaveHistory replaces the stored history for a merchant key.
func (s *SQLiteStorage) SaveHistory(ctx context.Context, key string, history *model.MerchantHistory) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if err := validateHistory(history); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var mcCategory, mcSubCategory any
		if history.MostCommon != nil {
			mcCategory = history.MostCommon.Category
			mcSubCategory = history.MostCommon.SubCategory
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO merchant_history (key, original_name, most_common_category, most_common_subcategory, confidence)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				original_name = excluded.original_name,
				most_common_category = excluded.most_common_category,
				most_common_subcategory = excluded.most_common_subcategory,
				confidence = excluded.confidence
		`, key, history.OriginalName, mcCategory, mcSubCategory, history.Confidence); err != nil {
			return fmt.Errorf("failed to save merchant history: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM merchant_history_choices WHERE history_key = ?`, key); err != nil {
			return fmt.Errorf("failed to clear history choices: %w", err)
		}

		for i, choice := range history.Choices {
			createdAt := choice.CreatedAt
			if createdAt.IsZero() {
				createdAt = time.Now()
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO merchant_history_choices
					(history_key, position, category, subcategory, account_type, txn_type, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, key, i, choice.Category, choice.SubCategory,
				choice.AccountType, choice.Type, createdAt); err != nil {
				return fmt.Errorf("failed to save history choice: %w", err)
			}
		}
		return nil
	})
}

// DeleteHistory removes one merchant's history.
func (s *SQLiteStorage) DeleteHistory(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM merchant_history_choices WHERE history_key = ?`, key); err != nil {
			return fmt.Errorf("failed to delete history choices: %w", err)
		}
		result, err := tx.ExecContext(ctx,
			`DELETE FROM merchant_history WHERE key = ?`, key)
		if err != nil {
			return fmt.Errorf("failed to delete merchant history: %w", err)
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

// ListHistories returns all merchant histories keyed by normalized name.
func (s *SQLiteStorage) ListHistories(ctx context.Context) (map[string]model.MerchantHistory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key FROM merchant_history ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchant histories: %w", err)
	}
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan history key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	histories := make(map[string]model.MerchantHistory, len(keys))
	for _, key := range keys {
		history, err := s.getHistoryTx(ctx, s.db, key)
		if err != nil {
			return nil, err
		}
		if history != nil {
			histories[key] = *history
		}
	}
	return histories, nil
}

// ClearHistories removes every merchant history.
func (s *SQLiteStorage) ClearHistories(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM merchant_history_choices`); err != nil {
			return fmt.Errorf("failed to clear history choices: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM merchant_history`); err != nil {
			return fmt.Errorf("failed to clear merchant history: %w", err)
		}
		return nil
	})
}
