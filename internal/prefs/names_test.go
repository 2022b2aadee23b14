package prefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgerkeep/ledgerkeep/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(testutil.SetupTestDB(t))
}

func TestCustomNames_SetAndResolve(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	assert.True(t, store.SetCustomName(ctx, "WALMART #2717", "CHARLOTTE NC", "Neighborhood Walmart"))

	// Lookup is keyed on the normalized identity, so punctuation and case
	// differences still hit.
	assert.Equal(t, "Neighborhood Walmart", store.CustomName(ctx, "walmart 2717", "charlotte nc"))
	assert.Equal(t, "Neighborhood Walmart", store.ResolveFinalName(ctx, "WALMART #2717", "CHARLOTTE NC"))
}

func TestCustomNames_ResolveFallsBackToCleaning(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	assert.Empty(t, store.CustomName(ctx, "TST* BOB'S DINER", ""))
	assert.Equal(t, "Tst Bobs Diner", store.ResolveFinalName(ctx, "TST* BOB'S DINER", ""))
}

func TestCustomNames_RejectsEmptyInputs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	assert.False(t, store.SetCustomName(ctx, "", "", "Name"))
	assert.False(t, store.SetCustomName(ctx, "RAW", "", "  "))
}

func TestCustomNames_OverwritePreservesTelemetry(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	assert.True(t, store.SetCustomName(ctx, "COSTCO WHSE #0382", "", "Costco"))
	store.RecordNameUsage(ctx, "COSTCO WHSE #0382", "")
	store.RecordNameUsage(ctx, "COSTCO WHSE #0382", "")

	assert.True(t, store.SetCustomName(ctx, "COSTCO WHSE #0382", "", "Costco Wholesale"))

	entries := store.CustomNames(ctx)
	assert.Len(t, entries, 1)
	for _, entry := range entries {
		assert.Equal(t, "Costco Wholesale", entry.CustomName)
		assert.Equal(t, 2, entry.UseCount)
	}
}

func TestCustomNames_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	assert.True(t, store.SetCustomName(ctx, "RAW MERCHANT", "", "Nice Name"))
	assert.True(t, store.RemoveCustomName(ctx, "RAW MERCHANT", ""))
	assert.False(t, store.RemoveCustomName(ctx, "RAW MERCHANT", ""), "second remove finds nothing")
	assert.Empty(t, store.CustomName(ctx, "RAW MERCHANT", ""))
}

func TestCustomNames_Clear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.SetCustomName(ctx, "ONE", "", "First")
	store.SetCustomName(ctx, "TWO", "", "Second")

	assert.True(t, store.ClearCustomNames(ctx))
	assert.Empty(t, store.CustomNames(ctx))
}
