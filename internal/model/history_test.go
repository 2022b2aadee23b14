package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_AddTrimsToCap(t *testing.T) {
	var h MerchantHistory
	for i := 0; i < MaxRetainedChoices+5; i++ {
		h.Add(CategoryChoice{Category: fmt.Sprintf("Category %d", i), SubCategory: "Sub"})
	}

	assert.Len(t, h.Choices, MaxRetainedChoices)
	// Oldest entries fall off first.
	assert.Equal(t, "Category 5", h.Choices[0].Category)
	assert.Equal(t, fmt.Sprintf("Category %d", MaxRetainedChoices+4), h.Choices[len(h.Choices)-1].Category)
}

func TestHistory_ConfidenceIsShareOfRetained(t *testing.T) {
	var h MerchantHistory
	for i := 0; i < 6; i++ {
		h.Add(CategoryChoice{Category: "Food & Dining", SubCategory: "Groceries"})
	}
	for i := 0; i < 4; i++ {
		h.Add(CategoryChoice{Category: "Shopping", SubCategory: "General"})
	}

	require.NotNil(t, h.MostCommon)
	assert.Equal(t, "Food & Dining", h.MostCommon.Category)
	assert.Equal(t, "Groceries", h.MostCommon.SubCategory)
	assert.InDelta(t, 0.6, h.Confidence, 1e-9)
}

func TestHistory_MostCommonTieBreak(t *testing.T) {
	// On a tie the first-recorded pair wins.
	var h MerchantHistory
	h.Add(CategoryChoice{Category: "Food & Dining", SubCategory: "Restaurants"})
	h.Add(CategoryChoice{Category: "Shopping", SubCategory: "General"})
	h.Add(CategoryChoice{Category: "Shopping", SubCategory: "General"})
	h.Add(CategoryChoice{Category: "Food & Dining", SubCategory: "Restaurants"})

	require.NotNil(t, h.MostCommon)
	assert.Equal(t, "Food & Dining", h.MostCommon.Category)
	assert.InDelta(t, 0.5, h.Confidence, 1e-9)
}

func TestHistory_RecomputeEmpty(t *testing.T) {
	h := MerchantHistory{
		MostCommon: &CategoryPair{Category: "Stale"},
		Confidence: 1,
	}
	h.Recompute()

	assert.Nil(t, h.MostCommon)
	assert.Zero(t, h.Confidence)
}

func TestHistory_TrimShiftsMajority(t *testing.T) {
	var h MerchantHistory
	// Fill the window with one pair, then push it out with another.
	for i := 0; i < MaxRetainedChoices; i++ {
		h.Add(CategoryChoice{Category: "Old", SubCategory: "Pair"})
	}
	for i := 0; i < MaxRetainedChoices; i++ {
		h.Add(CategoryChoice{Category: "New", SubCategory: "Pair"})
	}

	require.NotNil(t, h.MostCommon)
	assert.Equal(t, "New", h.MostCommon.Category)
	assert.InDelta(t, 1.0, h.Confidence, 1e-9)
}
