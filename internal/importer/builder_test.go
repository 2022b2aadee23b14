package importer

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/ledgerkeep/internal/merchant"
	"github.com/ledgerkeep/ledgerkeep/internal/model"
	"github.com/ledgerkeep/ledgerkeep/internal/suggest"
)

// fakePrefs is an in-memory Preferences implementation for builder tests.
type fakePrefs struct {
	mappings      map[string]string
	customNames   map[string]string
	autoApply     map[string]bool
	mainDefaults  map[string]*model.Default
	mappingUsage  int
	nameUsage     int
	defaultsUsage int
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{
		mappings:     map[string]string{},
		customNames:  map[string]string{},
		autoApply:    map[string]bool{},
		mainDefaults: map[string]*model.Default{},
	}
}

func (f *fakePrefs) Resolve(_ context.Context, raw, location string) string {
	return f.mappings[merchant.Normalize(raw, location)]
}

func (f *fakePrefs) RecordMappingUsage(_ context.Context, _, _ string) {
	f.mappingUsage++
}

func (f *fakePrefs) CustomName(_ context.Context, raw, location string) string {
	return f.customNames[merchant.Normalize(raw, location)]
}

func (f *fakePrefs) RecordNameUsage(_ context.Context, _, _ string) {
	f.nameUsage++
}

func (f *fakePrefs) ResolveFinalName(ctx context.Context, raw, location string) string {
	if custom := f.CustomName(ctx, raw, location); custom != "" {
		return custom
	}
	return merchant.Clean(raw)
}

func (f *fakePrefs) ShouldAutoApply(_ context.Context, merchantName string) bool {
	return f.autoApply[merchantName]
}

func (f *fakePrefs) MainDefault(_ context.Context, merchantName string) *model.Default {
	return f.mainDefaults[merchantName]
}

func (f *fakePrefs) ApplyDefault(_ context.Context, merchantName, _ string) *model.Default {
	f.defaultsUsage++
	return f.mainDefaults[merchantName]
}

func record(raw, description string, amount float64) model.RawRecord {
	return model.RawRecord{
		Date:        time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		MerchantRaw: raw,
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
	}
}

func TestBuilder_CleansUnknownMerchant(t *testing.T) {
	builder := NewBuilder(newFakePrefs(), suggest.NewEngine(nil), "cash", "depository")

	proposals := builder.Propose(context.Background(), []model.RawRecord{
		record("WALMART #2717 CHARLOTTE NC", "WALMART GROCERY PURCHASE", -45.12),
	})
	require.Len(t, proposals, 1)

	p := proposals[0]
	assert.Equal(t, "Walmart", p.MerchantName)
	assert.Equal(t, model.TypeExpense, p.Type)
	assert.Equal(t, "Food & Dining", p.Category, "keyword suggestion fills the category")
	assert.Equal(t, "Groceries", p.SubCategory)
	assert.True(t, p.AutoSuggested)
	assert.NotEmpty(t, p.ID)
}

func TestBuilder_CustomNameWinsOverCleaning(t *testing.T) {
	prefs := newFakePrefs()
	prefs.customNames[merchant.Normalize("TST* BOB'S DINER", "")] = "Bob's Diner"
	builder := NewBuilder(prefs, suggest.NewEngine(nil), "cash", "depository")

	proposals := builder.Propose(context.Background(), []model.RawRecord{
		record("TST* BOB'S DINER", "TST* BOB'S DINER", -18.40),
	})
	require.Len(t, proposals, 1)

	assert.Equal(t, "Bob's Diner", proposals[0].MerchantName)
	assert.Equal(t, 1, prefs.nameUsage, "custom name hit is recorded")
	assert.Zero(t, prefs.mappingUsage)
}

func TestBuilder_MappingWinsOverCustomName(t *testing.T) {
	prefs := newFakePrefs()
	key := merchant.Normalize("SQ *BLUE BOTTLE", "")
	prefs.mappings[key] = "Blue Bottle Coffee"
	prefs.customNames[key] = "Loser Name"
	builder := NewBuilder(prefs, suggest.NewEngine(nil), "cash", "depository")

	proposals := builder.Propose(context.Background(), []model.RawRecord{
		record("SQ *BLUE BOTTLE", "SQ *BLUE BOTTLE", -6.00),
	})
	require.Len(t, proposals, 1)

	assert.Equal(t, "Blue Bottle Coffee", proposals[0].MerchantName)
	assert.Equal(t, 1, prefs.mappingUsage)
	assert.Zero(t, prefs.nameUsage, "custom name chain never runs on a mapping hit")
}

func TestBuilder_AutoAppliesMainDefault(t *testing.T) {
	prefs := newFakePrefs()
	prefs.mappings[merchant.Normalize("NETFLIX.COM", "")] = "Netflix"
	prefs.autoApply["Netflix"] = true
	prefs.mainDefaults["Netflix"] = &model.Default{
		Name:        "Subscription",
		Category:    "Utilities",
		SubCategory: "Streaming Services",
		Notes:       "monthly",
		Type:        model.TypeExpense,
		IsRecurring: true,
	}
	builder := NewBuilder(prefs, suggest.NewEngine(nil), "cash", "depository")

	proposals := builder.Propose(context.Background(), []model.RawRecord{
		record("NETFLIX.COM", "NETFLIX.COM SUBSCRIPTION", -15.49),
	})
	require.Len(t, proposals, 1)

	p := proposals[0]
	assert.Equal(t, "Utilities", p.Category)
	assert.Equal(t, "Streaming Services", p.SubCategory)
	assert.Equal(t, "monthly", p.Notes)
	assert.True(t, p.IsRecurring)
	assert.True(t, p.AutoSuggested)
	assert.Equal(t, 1, prefs.defaultsUsage, "auto-apply records default usage")
}

func TestBuilder_AutoApplyRequiresMapping(t *testing.T) {
	prefs := newFakePrefs()
	// Flag set but the merchant arrives unmapped.
	prefs.autoApply["Netflix"] = true
	prefs.mainDefaults["Netflix"] = &model.Default{Name: "Subscription", Category: "Utilities"}
	builder := NewBuilder(prefs, suggest.NewEngine(nil), "cash", "depository")

	proposals := builder.Propose(context.Background(), []model.RawRecord{
		record("NETFLIX.COM", "NETFLIX.COM", -15.49),
	})
	require.Len(t, proposals, 1)
	assert.Zero(t, prefs.defaultsUsage)
}

func TestBuilder_PaymentRowOnDebtAccount(t *testing.T) {
	builder := NewBuilder(newFakePrefs(), suggest.NewEngine(nil), "credit card", "debt")

	proposals := builder.Propose(context.Background(), []model.RawRecord{
		record("MOBILE PAYMENT - THANK YOU", "MOBILE PAYMENT - THANK YOU", 250.00),
	})
	require.Len(t, proposals, 1)
	assert.Equal(t, model.TypePayment, proposals[0].Type)
}

func TestBuilder_EmptyDescriptionFallsBackToMerchant(t *testing.T) {
	builder := NewBuilder(newFakePrefs(), suggest.NewEngine(nil), "cash", "depository")

	proposals := builder.Propose(context.Background(), []model.RawRecord{
		record("CORNER BOOKS", "", -12.00),
	})
	require.Len(t, proposals, 1)
	assert.Equal(t, "Corner Books", proposals[0].Description)
}
