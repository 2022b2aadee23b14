package model

import "time"

// DefaultSource distinguishes user-created named defaults from legacy
// preference records adapted at migration time.
type DefaultSource string

const (
	// DefaultNamed is a preset created through the named defaults store.
	DefaultNamed DefaultSource = "named"
	// DefaultLegacy is a preset adapted from an old-style merchant
	// preference record.
	DefaultLegacy DefaultSource = "legacy"
)

// MainDefaultLabel is the reserved name that always wins main-default
// selection when present.
const MainDefaultLabel = "Main Default"

// Default is a reusable category preset for a merchant. Named and legacy
// records share this shape; Confidence is only meaningful for legacy rows.
type Default struct {
	Source      DefaultSource
	Name        string
	Category    string
	SubCategory string
	Notes       string
	Type        string
	IsRecurring bool
	Confidence  float64
	CreatedAt   time.Time
	LastUsed    time.Time
	UseCount    int
}

// MerchantDefaults holds all presets for one merchant plus the optional
// explicit main-default pointer.
type MerchantDefaults struct {
	Merchant        string
	MainDefaultName string
	Defaults        []Default
}

// Find returns the default with the given name, or nil.
func (m *MerchantDefaults) Find(name string) *Default {
	for i := range m.Defaults {
		if m.Defaults[i].Name == name {
			return &m.Defaults[i]
		}
	}
	return nil
}

// Main resolves the merchant's main default: the explicit pointer when it
// still references an existing preset, then the reserved "Main Default"
// name, then the sole preset, then the highest use count (earliest created
// wins ties). Returns nil when the merchant has no presets.
func (m *MerchantDefaults) Main() *Default {
	if len(m.Defaults) == 0 {
		return nil
	}
	if m.MainDefaultName != "" {
		if d := m.Find(m.MainDefaultName); d != nil {
			return d
		}
	}
	if d := m.Find(MainDefaultLabel); d != nil {
		return d
	}
	if len(m.Defaults) == 1 {
		return &m.Defaults[0]
	}
	best := &m.Defaults[0]
	for i := range m.Defaults[1:] {
		if m.Defaults[i+1].UseCount > best.UseCount {
			best = &m.Defaults[i+1]
		}
	}
	return best
}
