package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/ledgerkeep/internal/common"
	"github.com/ledgerkeep/ledgerkeep/internal/model"
	"github.com/ledgerkeep/ledgerkeep/internal/service"
	"github.com/ledgerkeep/ledgerkeep/internal/storage"
	"github.com/ledgerkeep/ledgerkeep/internal/testutil"
)

// Compile-time check that the SQLite implementation satisfies the contract.
var _ service.Storage = (*storage.SQLiteStorage)(nil)

func TestNewSQLiteStorage_Validation(t *testing.T) {
	_, err := storage.NewSQLiteStorage("")
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := testutil.SetupTestDB(t)

	// Re-running migrations on an up-to-date database is a no-op.
	assert.NoError(t, store.Migrate(context.Background()))
}

func TestCustomNames_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)

	missing, err := store.GetCustomName(ctx, "no such key")
	require.NoError(t, err)
	assert.Nil(t, missing, "lookup miss is not an error")

	entry := &model.CustomName{
		RawMerchant: "WALMART #2717",
		Location:    "CHARLOTTE NC",
		CustomName:  "Neighborhood Walmart",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		UseCount:    3,
	}
	require.NoError(t, store.SaveCustomName(ctx, "walmart 2717 charlotte nc", entry))

	got, err := store.GetCustomName(ctx, "walmart 2717 charlotte nc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Neighborhood Walmart", got.CustomName)
	assert.Equal(t, "WALMART #2717", got.RawMerchant)
	assert.Equal(t, 3, got.UseCount)

	// Upsert overwrites in place.
	entry.CustomName = "Walmart"
	require.NoError(t, store.SaveCustomName(ctx, "walmart 2717 charlotte nc", entry))
	names, err := store.ListCustomNames(ctx)
	require.NoError(t, err)
	require.Len(t, names, 1)

	require.NoError(t, store.DeleteCustomName(ctx, "walmart 2717 charlotte nc"))
	assert.ErrorIs(t, store.DeleteCustomName(ctx, "walmart 2717 charlotte nc"), common.ErrNotFound)
}

func TestHistory_RoundTripPreservesChoiceOrder(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)

	history := &model.MerchantHistory{OriginalName: "Costco"}
	history.Add(model.CategoryChoice{Category: "Food & Dining", SubCategory: "Groceries", AccountType: "cash", Type: model.TypeExpense, CreatedAt: time.Now()})
	history.Add(model.CategoryChoice{Category: "Shopping", SubCategory: "Home Goods", AccountType: "cash", Type: model.TypeExpense, CreatedAt: time.Now()})
	history.Add(model.CategoryChoice{Category: "Food & Dining", SubCategory: "Groceries", AccountType: "cash", Type: model.TypeExpense, CreatedAt: time.Now()})
	require.NoError(t, store.SaveHistory(ctx, "costco", history))

	got, err := store.GetHistory(ctx, "costco")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Costco", got.OriginalName)
	require.Len(t, got.Choices, 3)
	// Insertion order survives the round trip, so the tie-break stays stable.
	assert.Equal(t, "Food & Dining", got.Choices[0].Category)
	assert.Equal(t, "Shopping", got.Choices[1].Category)
	require.NotNil(t, got.MostCommon)
	assert.Equal(t, "Food & Dining", got.MostCommon.Category)
	assert.InDelta(t, history.Confidence, got.Confidence, 1e-9)

	// Saving again replaces the choice rows instead of appending.
	require.NoError(t, store.SaveHistory(ctx, "costco", got))
	again, err := store.GetHistory(ctx, "costco")
	require.NoError(t, err)
	assert.Len(t, again.Choices, 3)

	require.NoError(t, store.DeleteHistory(ctx, "costco"))
	assert.ErrorIs(t, store.DeleteHistory(ctx, "costco"), common.ErrNotFound)
}

func TestDefaults_RoundTripPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)

	defaults := &model.MerchantDefaults{
		Merchant:        "Costco",
		MainDefaultName: "Gas",
		Defaults: []model.Default{
			{Source: model.DefaultNamed, Name: "Groceries run", Category: "Food & Dining", SubCategory: "Groceries", Type: model.TypeExpense},
			{Source: model.DefaultNamed, Name: "Gas", Category: "Transportation", SubCategory: "Gas & Fuel", Type: model.TypeExpense, IsRecurring: true, UseCount: 4},
			{Source: model.DefaultLegacy, Name: "Legacy Preference", Category: "Shopping", Confidence: 0.85},
		},
	}
	require.NoError(t, store.SaveDefaults(ctx, "costco", defaults))

	got, err := store.GetDefaults(ctx, "costco")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Gas", got.MainDefaultName)
	require.Len(t, got.Defaults, 3)
	assert.Equal(t, "Groceries run", got.Defaults[0].Name)
	assert.Equal(t, "Gas", got.Defaults[1].Name)
	assert.True(t, got.Defaults[1].IsRecurring)
	assert.Equal(t, 4, got.Defaults[1].UseCount)
	assert.Equal(t, model.DefaultLegacy, got.Defaults[2].Source)
	assert.InDelta(t, 0.85, got.Defaults[2].Confidence, 1e-9)

	all, err := store.ListDefaults(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, store.DeleteDefaults(ctx, "costco"))
	missing, err := store.GetDefaults(ctx, "costco")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMappings_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)

	mapping := &model.RawMapping{
		RawMerchant:  "SQ *BLUE BOTTLE",
		Location:     "OAKLAND CA",
		MerchantName: "Blue Bottle Coffee",
		AutoApply:    true,
	}
	require.NoError(t, store.SaveMapping(ctx, "sq blue bottle oakland ca", mapping))

	got, err := store.GetMapping(ctx, "sq blue bottle oakland ca")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Blue Bottle Coffee", got.MerchantName)
	assert.True(t, got.AutoApply)

	mappings, err := store.ListMappings(ctx)
	require.NoError(t, err)
	assert.Len(t, mappings, 1)

	require.NoError(t, store.DeleteMapping(ctx, "sq blue bottle oakland ca"))
	assert.ErrorIs(t, store.DeleteMapping(ctx, "sq blue bottle oakland ca"), common.ErrNotFound)
}

func TestAutoApplyMerchant(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)

	flag, err := store.GetAutoApplyMerchant(ctx, "Netflix")
	require.NoError(t, err)
	assert.False(t, flag, "unknown merchants default to off")

	require.NoError(t, store.SetAutoApplyMerchant(ctx, "Netflix", true))
	flag, err = store.GetAutoApplyMerchant(ctx, "Netflix")
	require.NoError(t, err)
	assert.True(t, flag)

	require.NoError(t, store.SetAutoApplyMerchant(ctx, "Netflix", false))
	flag, err = store.GetAutoApplyMerchant(ctx, "Netflix")
	require.NoError(t, err)
	assert.False(t, flag)
}

func TestClearNamespacesAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)

	require.NoError(t, store.SaveCustomName(ctx, "k1", &model.CustomName{RawMerchant: "A", CustomName: "B"}))
	require.NoError(t, store.SaveMapping(ctx, "k2", &model.RawMapping{RawMerchant: "C", MerchantName: "D"}))

	require.NoError(t, store.ClearCustomNames(ctx))

	names, err := store.ListCustomNames(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	mappings, err := store.ListMappings(ctx)
	require.NoError(t, err)
	assert.Len(t, mappings, 1, "clearing one namespace leaves the others")
}

func TestValidation_NilContext(t *testing.T) {
	store := testutil.SetupTestDB(t)

	//nolint:staticcheck // testing nil-context validation on purpose
	_, err := store.GetCustomName(nil, "key")
	assert.Error(t, err)
}
