package prefs

import (
	"context"
	"errors"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/common"
	"github.com/ledgerkeep/ledgerkeep/internal/merchant"
	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

// PreferenceConfidenceFloor is the minimum confidence required before a
// learned preference is offered as a suggestion.
const PreferenceConfidenceFloor = 0.6

// RecordChoice records one accepted categorization decision for a merchant.
// Returns false without mutation when the choice fails the recordability
// rule: empty or placeholder category, or an expense with an empty or
// placeholder subcategory.
func (s *Store) RecordChoice(ctx context.Context, merchantName, category, subCategory, accountType, transactionType string) bool {
	if merchantName == "" || !model.Recordable(category, subCategory, transactionType) {
		return false
	}

	key := merchant.Normalize(merchantName, "")
	history, err := s.storage.GetHistory(ctx, key)
	if err != nil {
		s.degraded("RecordChoice", err)
		history = nil
	}
	if history == nil {
		history = &model.MerchantHistory{OriginalName: merchantName}
	}

	history.Add(model.CategoryChoice{
		Category:    category,
		SubCategory: subCategory,
		AccountType: accountType,
		Type:        transactionType,
		CreatedAt:   time.Now(),
	})

	if err := s.storage.SaveHistory(ctx, key, history); err != nil {
		s.degraded("RecordChoice", err)
		return false
	}
	return true
}

// Preference returns the learned suggestion for a merchant, or nil when the
// merchant is unknown or its confidence is below the floor.
func (s *Store) Preference(ctx context.Context, merchantName string) *model.Suggestion {
	if merchantName == "" {
		return nil
	}
	history, err := s.storage.GetHistory(ctx, merchant.Normalize(merchantName, ""))
	if err != nil {
		s.degraded("Preference", err)
		return nil
	}
	if history == nil || history.MostCommon == nil || history.Confidence < PreferenceConfidenceFloor {
		return nil
	}
	return &model.Suggestion{
		Parent:     history.MostCommon.Category,
		Sub:        history.MostCommon.SubCategory,
		Confidence: history.Confidence,
		Source:     model.SourceMerchantHistory,
		UseCount:   len(history.Choices),
	}
}

// IsKnown reports whether any history exists for a merchant, independent of
// confidence.
func (s *Store) IsKnown(ctx context.Context, merchantName string) bool {
	if merchantName == "" {
		return false
	}
	history, err := s.storage.GetHistory(ctx, merchant.Normalize(merchantName, ""))
	if err != nil {
		s.degraded("IsKnown", err)
		return false
	}
	return history != nil
}

// Histories returns every merchant history for the management UI.
func (s *Store) Histories(ctx context.Context) map[string]model.MerchantHistory {
	histories, err := s.storage.ListHistories(ctx)
	if err != nil {
		s.degraded("Histories", err)
		return map[string]model.MerchantHistory{}
	}
	return histories
}

// ClearHistory removes one merchant's history. Reports whether it existed.
func (s *Store) ClearHistory(ctx context.Context, merchantName string) bool {
	err := s.storage.DeleteHistory(ctx, merchant.Normalize(merchantName, ""))
	if errors.Is(err, common.ErrNotFound) {
		return false
	}
	if err != nil {
		s.degraded("ClearHistory", err)
		return false
	}
	return true
}

// ClearHistories removes every merchant history.
func (s *Store) ClearHistories(ctx context.Context) bool {
	if err := s.storage.ClearHistories(ctx); err != nil {
		s.degraded("ClearHistories", err)
		return false
	}
	return true
}
