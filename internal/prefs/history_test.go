package prefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

func TestRecordChoice_RecordabilityRule(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	tests := []struct {
		name        string
		category    string
		subCategory string
		txType      string
		want        bool
	}{
		{"complete expense", "Food & Dining", "Groceries", model.TypeExpense, true},
		{"expense without subcategory", "Food & Dining", "", model.TypeExpense, false},
		{"income without subcategory", "Income", "", model.TypeIncome, true},
		{"placeholder category", model.PlaceholderCategory, "Groceries", model.TypeExpense, false},
		{"empty category", "", "Groceries", model.TypeExpense, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.RecordChoice(ctx, "Test Merchant "+tt.name, tt.category, tt.subCategory, "cash", tt.txType)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordChoice_RejectedChoiceLeavesNoHistory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	assert.False(t, store.RecordChoice(ctx, "Walmart", model.PlaceholderCategory, "", "cash", model.TypeExpense))
	assert.False(t, store.IsKnown(ctx, "Walmart"))
}

func TestPreference_ConfidenceFloor(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// 6 of 10 choices agree: exactly at the floor, so the preference holds.
	for i := 0; i < 6; i++ {
		require.True(t, store.RecordChoice(ctx, "Costco", "Food & Dining", "Groceries", "cash", model.TypeExpense))
	}
	for i := 0; i < 4; i++ {
		require.True(t, store.RecordChoice(ctx, "Costco", "Shopping", "Home Goods", "cash", model.TypeExpense))
	}

	pref := store.Preference(ctx, "Costco")
	require.NotNil(t, pref)
	assert.Equal(t, "Food & Dining", pref.Parent)
	assert.Equal(t, "Groceries", pref.Sub)
	assert.Equal(t, model.SourceMerchantHistory, pref.Source)
	assert.InDelta(t, 0.6, pref.Confidence, 1e-9)
	assert.Equal(t, 10, pref.UseCount)

	// One more disagreement drops the majority below the floor.
	require.True(t, store.RecordChoice(ctx, "Costco", "Shopping", "Home Goods", "cash", model.TypeExpense))
	assert.Nil(t, store.Preference(ctx, "Costco"))
	assert.True(t, store.IsKnown(ctx, "Costco"), "known even when below the floor")
}

func TestPreference_UnknownMerchant(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	assert.Nil(t, store.Preference(ctx, "Never Seen"))
	assert.Nil(t, store.Preference(ctx, ""))
	assert.False(t, store.IsKnown(ctx, "Never Seen"))
}

func TestRecordChoice_RetentionCap(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i := 0; i < model.MaxRetainedChoices; i++ {
		require.True(t, store.RecordChoice(ctx, "Shifty", "Old", "Pair", "cash", model.TypeExpense))
	}
	// The eleventh choice evicts the oldest.
	require.True(t, store.RecordChoice(ctx, "Shifty", "New", "Pair", "cash", model.TypeExpense))

	histories := store.Histories(ctx)
	require.Len(t, histories, 1)
	for _, history := range histories {
		assert.Len(t, history.Choices, model.MaxRetainedChoices)
		assert.Equal(t, "New", history.Choices[len(history.Choices)-1].Category)
	}
}

func TestClearHistory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.True(t, store.RecordChoice(ctx, "Walmart", "Food & Dining", "Groceries", "cash", model.TypeExpense))
	require.True(t, store.RecordChoice(ctx, "Target", "Shopping", "Home Goods", "cash", model.TypeExpense))

	assert.True(t, store.ClearHistory(ctx, "Walmart"))
	assert.False(t, store.ClearHistory(ctx, "Walmart"), "already gone")
	assert.False(t, store.IsKnown(ctx, "Walmart"))
	assert.True(t, store.IsKnown(ctx, "Target"))

	assert.True(t, store.ClearHistories(ctx))
	assert.Empty(t, store.Histories(ctx))
}
