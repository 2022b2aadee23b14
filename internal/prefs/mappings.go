package prefs

import (
	"context"
	"strings"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/merchant"
	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

// LinkRawData upserts a mapping from a raw identity to a clean merchant
// name. When autoApply is set, the merchant-level auto-apply flag is flipped
// as well.
func (s *Store) LinkRawData(ctx context.Context, raw, location, merchantName string, autoApply bool) bool {
	raw = strings.TrimSpace(raw)
	merchantName = strings.TrimSpace(merchantName)
	if raw == "" || merchantName == "" {
		return false
	}

	key := merchant.Normalize(raw, location)
	existing, err := s.storage.GetMapping(ctx, key)
	if err != nil {
		s.degraded("LinkRawData", err)
		existing = nil
	}

	mapping := &model.RawMapping{
		RawMerchant:  raw,
		Location:     location,
		MerchantName: merchantName,
		AutoApply:    autoApply,
	}
	if existing != nil {
		mapping.CreatedAt = existing.CreatedAt
		mapping.LastUsed = existing.LastUsed
		mapping.UseCount = existing.UseCount
	}

	if err := s.storage.SaveMapping(ctx, key, mapping); err != nil {
		s.degraded("LinkRawData", err)
		return false
	}

	if autoApply {
		if err := s.storage.SetAutoApplyMerchant(ctx, merchantName, true); err != nil {
			s.degraded("LinkRawData", err)
		}
	}
	return true
}

// Resolve returns the mapped merchant name for a raw identity, or "" on a
// miss. Pure read: telemetry is recorded separately via RecordMappingUsage.
func (s *Store) Resolve(ctx context.Context, raw, location string) string {
	key := merchant.Normalize(raw, location)
	if key == "" {
		return ""
	}
	mapping, err := s.storage.GetMapping(ctx, key)
	if err != nil {
		s.degraded("Resolve", err)
		return ""
	}
	if mapping == nil {
		return ""
	}
	return mapping.MerchantName
}

// RecordMappingUsage bumps the usage telemetry for a raw mapping.
func (s *Store) RecordMappingUsage(ctx context.Context, raw, location string) {
	key := merchant.Normalize(raw, location)
	if key == "" {
		return
	}
	mapping, err := s.storage.GetMapping(ctx, key)
	if err != nil {
		s.degraded("RecordMappingUsage", err)
		return
	}
	if mapping == nil {
		return
	}
	mapping.UseCount++
	mapping.LastUsed = time.Now()
	if err := s.storage.SaveMapping(ctx, key, mapping); err != nil {
		s.degraded("RecordMappingUsage", err)
	}
}

// ShouldAutoApply reports whether future imports of this merchant should
// skip manual selection.
func (s *Store) ShouldAutoApply(ctx context.Context, merchantName string) bool {
	if strings.TrimSpace(merchantName) == "" {
		return false
	}
	autoApply, err := s.storage.GetAutoApplyMerchant(ctx, merchantName)
	if err != nil {
		s.degraded("ShouldAutoApply", err)
		return false
	}
	return autoApply
}

// Mappings returns all raw data mappings for the management UI.
func (s *Store) Mappings(ctx context.Context) map[string]model.RawMapping {
	mappings, err := s.storage.ListMappings(ctx)
	if err != nil {
		s.degraded("Mappings", err)
		return map[string]model.RawMapping{}
	}
	return mappings
}

// ClearMappings removes every raw data mapping and auto-apply flag.
func (s *Store) ClearMappings(ctx context.Context) bool {
	if err := s.storage.ClearMappings(ctx); err != nil {
		s.degraded("ClearMappings", err)
		return false
	}
	return true
}
