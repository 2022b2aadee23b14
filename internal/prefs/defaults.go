package prefs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/common"
	"github.com/ledgerkeep/ledgerkeep/internal/merchant"
	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

// LegacyConfidenceFloor is the minimum confidence for a legacy preference to
// count as an applicable default during bulk approval.
const LegacyConfidenceFloor = 0.7

// CreateDefault creates or overwrites a named category preset for a
// merchant. Category validation follows the same recordability rule as
// RecordChoice. Re-creating an existing name overwrites it in place.
func (s *Store) CreateDefault(ctx context.Context, merchantName, name, category, subCategory, notes, transactionType string, isRecurring bool) bool {
	name = strings.TrimSpace(name)
	if merchantName == "" || name == "" || !model.Recordable(category, subCategory, transactionType) {
		return false
	}

	key := merchant.Normalize(merchantName, "")
	defaults := s.loadDefaults(ctx, key, merchantName)

	next := model.Default{
		Source:      model.DefaultNamed,
		Name:        name,
		Category:    category,
		SubCategory: subCategory,
		Notes:       notes,
		Type:        transactionType,
		IsRecurring: isRecurring,
		CreatedAt:   time.Now(),
	}
	if existing := defaults.Find(name); existing != nil {
		next.CreatedAt = existing.CreatedAt
		next.LastUsed = existing.LastUsed
		next.UseCount = existing.UseCount
		*existing = next
	} else {
		defaults.Defaults = append(defaults.Defaults, next)
	}

	if err := s.storage.SaveDefaults(ctx, key, defaults); err != nil {
		s.degraded("CreateDefault", err)
		return false
	}
	return true
}

// Defaults returns a merchant's presets in insertion order.
func (s *Store) Defaults(ctx context.Context, merchantName string) []model.Default {
	defaults, err := s.storage.GetDefaults(ctx, merchant.Normalize(merchantName, ""))
	if err != nil {
		s.degraded("Defaults", err)
		return nil
	}
	if defaults == nil {
		return nil
	}
	return defaults.Defaults
}

// Default returns one named preset without recording usage, or nil.
func (s *Store) Default(ctx context.Context, merchantName, name string) *model.Default {
	defaults, err := s.storage.GetDefaults(ctx, merchant.Normalize(merchantName, ""))
	if err != nil {
		s.degraded("Default", err)
		return nil
	}
	if defaults == nil {
		return nil
	}
	if d := defaults.Find(name); d != nil {
		copied := *d
		return &copied
	}
	return nil
}

// ApplyDefault records usage telemetry for a preset and returns its payload,
// or nil when absent. It does not mutate any transaction; the caller copies
// fields.
func (s *Store) ApplyDefault(ctx context.Context, merchantName, name string) *model.Default {
	key := merchant.Normalize(merchantName, "")
	defaults, err := s.storage.GetDefaults(ctx, key)
	if err != nil {
		s.degraded("ApplyDefault", err)
		return nil
	}
	if defaults == nil {
		return nil
	}
	d := defaults.Find(name)
	if d == nil {
		return nil
	}

	d.UseCount++
	d.LastUsed = time.Now()
	if err := s.storage.SaveDefaults(ctx, key, defaults); err != nil {
		s.degraded("ApplyDefault", err)
	}

	copied := *d
	return &copied
}

// MainDefault resolves the merchant's main preset; see model.MerchantDefaults.Main.
func (s *Store) MainDefault(ctx context.Context, merchantName string) *model.Default {
	defaults, err := s.storage.GetDefaults(ctx, merchant.Normalize(merchantName, ""))
	if err != nil {
		s.degraded("MainDefault", err)
		return nil
	}
	if defaults == nil {
		return nil
	}
	if d := defaults.Main(); d != nil {
		copied := *d
		return &copied
	}
	return nil
}

// SetMainDefault points the merchant's main default at an existing preset.
// Fails when the preset does not exist.
func (s *Store) SetMainDefault(ctx context.Context, merchantName, name string) bool {
	key := merchant.Normalize(merchantName, "")
	defaults, err := s.storage.GetDefaults(ctx, key)
	if err != nil {
		s.degraded("SetMainDefault", err)
		return false
	}
	if defaults == nil || defaults.Find(name) == nil {
		return false
	}

	defaults.MainDefaultName = name
	if err := s.storage.SaveDefaults(ctx, key, defaults); err != nil {
		s.degraded("SetMainDefault", err)
		return false
	}
	return true
}

// UpdateDefault rewrites an existing preset's fields, keeping its usage
// telemetry. The same category validation as CreateDefault applies.
func (s *Store) UpdateDefault(ctx context.Context, merchantName, name, category, subCategory, notes, transactionType string, isRecurring bool) bool {
	if !model.Recordable(category, subCategory, transactionType) {
		return false
	}

	key := merchant.Normalize(merchantName, "")
	defaults, err := s.storage.GetDefaults(ctx, key)
	if err != nil {
		s.degraded("UpdateDefault", err)
		return false
	}
	if defaults == nil {
		return false
	}
	d := defaults.Find(name)
	if d == nil {
		return false
	}

	d.Category = category
	d.SubCategory = subCategory
	d.Notes = notes
	d.Type = transactionType
	d.IsRecurring = isRecurring

	if err := s.storage.SaveDefaults(ctx, key, defaults); err != nil {
		s.degraded("UpdateDefault", err)
		return false
	}
	return true
}

// DeleteDefault removes one preset. When it was the explicit main default,
// the main pointer is cleared; the next MainDefault call falls back to the
// read-time selection rules.
func (s *Store) DeleteDefault(ctx context.Context, merchantName, name string) bool {
	key := merchant.Normalize(merchantName, "")
	defaults, err := s.storage.GetDefaults(ctx, key)
	if err != nil {
		s.degraded("DeleteDefault", err)
		return false
	}
	if defaults == nil {
		return false
	}

	found := false
	kept := defaults.Defaults[:0]
	for _, d := range defaults.Defaults {
		if d.Name == name {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return false
	}
	defaults.Defaults = kept
	if defaults.MainDefaultName == name {
		defaults.MainDefaultName = ""
	}

	if err := s.storage.SaveDefaults(ctx, key, defaults); err != nil {
		s.degraded("DeleteDefault", err)
		return false
	}
	return true
}

// HasApplicableDefault reports whether a merchant has at least one default
// usable for bulk approval: any named preset, or a legacy preference with
// confidence at or above the floor and a recordable category.
func (s *Store) HasApplicableDefault(ctx context.Context, merchantName, transactionType string) bool {
	defaults, err := s.storage.GetDefaults(ctx, merchant.Normalize(merchantName, ""))
	if err != nil {
		s.degraded("HasApplicableDefault", err)
		return false
	}
	if defaults == nil {
		return false
	}
	for _, d := range defaults.Defaults {
		switch d.Source {
		case model.DefaultNamed:
			return true
		case model.DefaultLegacy:
			if d.Confidence >= LegacyConfidenceFloor &&
				model.Recordable(d.Category, d.SubCategory, transactionType) {
				return true
			}
		}
	}
	return false
}

// AllDefaults returns every merchant defaults record for the management UI.
func (s *Store) AllDefaults(ctx context.Context) map[string]model.MerchantDefaults {
	all, err := s.storage.ListDefaults(ctx)
	if err != nil {
		s.degraded("AllDefaults", err)
		return map[string]model.MerchantDefaults{}
	}
	return all
}

// ClearMerchantDefaults removes one merchant's defaults record.
func (s *Store) ClearMerchantDefaults(ctx context.Context, merchantName string) bool {
	err := s.storage.DeleteDefaults(ctx, merchant.Normalize(merchantName, ""))
	if errors.Is(err, common.ErrNotFound) {
		return false
	}
	if err != nil {
		s.degraded("ClearMerchantDefaults", err)
		return false
	}
	return true
}

// ClearDefaults removes every merchant defaults record.
func (s *Store) ClearDefaults(ctx context.Context) bool {
	if err := s.storage.ClearDefaults(ctx); err != nil {
		s.degraded("ClearDefaults", err)
		return false
	}
	return true
}

// loadDefaults fetches a merchant defaults record or initializes an empty
// one.
func (s *Store) loadDefaults(ctx context.Context, key, merchantName string) *model.MerchantDefaults {
	defaults, err := s.storage.GetDefaults(ctx, key)
	if err != nil {
		s.degraded("loadDefaults", err)
		defaults = nil
	}
	if defaults == nil {
		defaults = &model.MerchantDefaults{Merchant: merchantName}
	}
	return defaults
}
