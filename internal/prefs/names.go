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

// SetCustomName upserts a user override of a merchant's display name.
// Both the raw merchant and the name must be non-empty.
func (s *Store) SetCustomName(ctx context.Context, raw, location, name string) bool {
	raw = strings.TrimSpace(raw)
	name = strings.TrimSpace(name)
	if raw == "" || name == "" {
		return false
	}

	key := merchant.Normalize(raw, location)
	existing, err := s.storage.GetCustomName(ctx, key)
	if err != nil {
		s.degraded("SetCustomName", err)
		existing = nil
	}

	entry := &model.CustomName{
		RawMerchant: raw,
		Location:    location,
		CustomName:  name,
	}
	if existing != nil {
		entry.CreatedAt = existing.CreatedAt
		entry.LastUsed = existing.LastUsed
		entry.UseCount = existing.UseCount
	}

	if err := s.storage.SaveCustomName(ctx, key, entry); err != nil {
		s.degraded("SetCustomName", err)
		return false
	}
	return true
}

// CustomName returns the custom display name for a raw identity, or "" when
// none exists. Pure read: usage telemetry is recorded separately via
// RecordNameUsage.
func (s *Store) CustomName(ctx context.Context, raw, location string) string {
	key := merchant.Normalize(raw, location)
	if key == "" {
		return ""
	}
	entry, err := s.storage.GetCustomName(ctx, key)
	if err != nil {
		s.degraded("CustomName", err)
		return ""
	}
	if entry == nil {
		return ""
	}
	return entry.CustomName
}

// RecordNameUsage bumps the usage telemetry for a custom name.
func (s *Store) RecordNameUsage(ctx context.Context, raw, location string) {
	key := merchant.Normalize(raw, location)
	if key == "" {
		return
	}
	entry, err := s.storage.GetCustomName(ctx, key)
	if err != nil {
		s.degraded("RecordNameUsage", err)
		return
	}
	if entry == nil {
		return
	}
	entry.UseCount++
	entry.LastUsed = time.Now()
	if err := s.storage.SaveCustomName(ctx, key, entry); err != nil {
		s.degraded("RecordNameUsage", err)
	}
}

// RemoveCustomName removes a custom name. Idempotent; reports whether an
// entry was found.
func (s *Store) RemoveCustomName(ctx context.Context, raw, location string) bool {
	key := merchant.Normalize(raw, location)
	if key == "" {
		return false
	}
	err := s.storage.DeleteCustomName(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return false
	}
	if err != nil {
		s.degraded("RemoveCustomName", err)
		return false
	}
	return true
}

// ResolveFinalName resolves the display name for a raw identity: a custom
// override always wins over the cleaned raw name.
func (s *Store) ResolveFinalName(ctx context.Context, raw, location string) string {
	if custom := s.CustomName(ctx, raw, location); custom != "" {
		return custom
	}
	return merchant.Clean(raw)
}

// CustomNames returns all custom name entries for the management UI.
func (s *Store) CustomNames(ctx context.Context) map[string]model.CustomName {
	entries, err := s.storage.ListCustomNames(ctx)
	if err != nil {
		s.degraded("CustomNames", err)
		return map[string]model.CustomName{}
	}
	return entries
}

// ClearCustomNames removes every custom name entry.
func (s *Store) ClearCustomNames(ctx context.Context) bool {
	if err := s.storage.ClearCustomNames(ctx); err != nil {
		s.degraded("ClearCustomNames", err)
		return false
	}
	return true
}
