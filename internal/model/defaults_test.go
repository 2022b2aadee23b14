package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerchantDefaults_Find(t *testing.T) {
	m := MerchantDefaults{
		Merchant: "Costco",
		Defaults: []Default{
			{Name: "Groceries run", Category: "Food & Dining", SubCategory: "Groceries"},
			{Name: "Gas", Category: "Transportation", SubCategory: "Gas & Fuel"},
		},
	}

	require.NotNil(t, m.Find("Gas"))
	assert.Equal(t, "Transportation", m.Find("Gas").Category)
	assert.Nil(t, m.Find("missing"))
}

func TestMerchantDefaults_Main(t *testing.T) {
	t.Run("empty merchant has no main", func(t *testing.T) {
		var m MerchantDefaults
		assert.Nil(t, m.Main())
	})

	t.Run("explicit pointer wins", func(t *testing.T) {
		m := MerchantDefaults{
			MainDefaultName: "Gas",
			Defaults: []Default{
				{Name: MainDefaultLabel, Category: "Food & Dining", SubCategory: "Groceries"},
				{Name: "Gas", Category: "Transportation", SubCategory: "Gas & Fuel"},
			},
		}
		require.NotNil(t, m.Main())
		assert.Equal(t, "Gas", m.Main().Name)
	})

	t.Run("dangling pointer falls back to reserved name", func(t *testing.T) {
		m := MerchantDefaults{
			MainDefaultName: "deleted",
			Defaults: []Default{
				{Name: "Gas", Category: "Transportation", SubCategory: "Gas & Fuel", UseCount: 9},
				{Name: MainDefaultLabel, Category: "Food & Dining", SubCategory: "Groceries"},
			},
		}
		require.NotNil(t, m.Main())
		assert.Equal(t, MainDefaultLabel, m.Main().Name)
	})

	t.Run("sole preset is main", func(t *testing.T) {
		m := MerchantDefaults{
			Defaults: []Default{{Name: "Only", Category: "Shopping", SubCategory: "General"}},
		}
		require.NotNil(t, m.Main())
		assert.Equal(t, "Only", m.Main().Name)
	})

	t.Run("highest use count wins with earliest breaking ties", func(t *testing.T) {
		m := MerchantDefaults{
			Defaults: []Default{
				{Name: "First", UseCount: 3},
				{Name: "Second", UseCount: 7},
				{Name: "Third", UseCount: 7},
			},
		}
		require.NotNil(t, m.Main())
		assert.Equal(t, "Second", m.Main().Name)
	})
}
