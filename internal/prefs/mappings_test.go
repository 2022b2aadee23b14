package prefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappings_LinkAndResolve(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	assert.Empty(t, store.Resolve(ctx, "SQ *BLUE BOTTLE", "OAKLAND CA"))

	require.True(t, store.LinkRawData(ctx, "SQ *BLUE BOTTLE", "OAKLAND CA", "Blue Bottle Coffee", false))

	// Resolution is keyed on the normalized raw identity.
	assert.Equal(t, "Blue Bottle Coffee", store.Resolve(ctx, "sq blue bottle", "oakland ca"))
	assert.Empty(t, store.Resolve(ctx, "SQ *BLUE BOTTLE", "PORTLAND OR"), "different location is a different identity")
}

func TestMappings_RejectsEmptyInputs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	assert.False(t, store.LinkRawData(ctx, "", "", "Name", false))
	assert.False(t, store.LinkRawData(ctx, "RAW", "", "  ", false))
}

func TestMappings_AutoApplyFlag(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.True(t, store.LinkRawData(ctx, "NETFLIX.COM", "", "Netflix", false))
	assert.False(t, store.ShouldAutoApply(ctx, "Netflix"))

	require.True(t, store.LinkRawData(ctx, "NETFLIX.COM", "", "Netflix", true))
	assert.True(t, store.ShouldAutoApply(ctx, "Netflix"))
	assert.False(t, store.ShouldAutoApply(ctx, ""))
}

func TestMappings_UsageTelemetry(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.True(t, store.LinkRawData(ctx, "AMZN MKTP US", "", "Amazon", false))
	store.RecordMappingUsage(ctx, "AMZN MKTP US", "")
	store.RecordMappingUsage(ctx, "AMZN MKTP US", "")

	mappings := store.Mappings(ctx)
	require.Len(t, mappings, 1)
	for _, mapping := range mappings {
		assert.Equal(t, 2, mapping.UseCount)
		assert.False(t, mapping.LastUsed.IsZero())
	}

	// Relinking preserves telemetry.
	require.True(t, store.LinkRawData(ctx, "AMZN MKTP US", "", "Amazon Marketplace", false))
	for _, mapping := range store.Mappings(ctx) {
		assert.Equal(t, "Amazon Marketplace", mapping.MerchantName)
		assert.Equal(t, 2, mapping.UseCount)
	}
}

func TestMappings_Clear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.True(t, store.LinkRawData(ctx, "ONE", "", "First", true))
	require.True(t, store.LinkRawData(ctx, "TWO", "", "Second", false))

	assert.True(t, store.ClearMappings(ctx))
	assert.Empty(t, store.Mappings(ctx))
	assert.False(t, store.ShouldAutoApply(ctx, "First"), "auto-apply flags clear with mappings")
}
