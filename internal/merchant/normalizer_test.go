package merchant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		location string
		want     string
	}{
		{
			name: "lowercases and strips punctuation",
			raw:  "TST* Bob's Diner",
			want: "tst bobs diner",
		},
		{
			name: "collapses internal whitespace",
			raw:  "COFFEE   SHOP\t\tNO 5",
			want: "coffee shop no 5",
		},
		{
			name:     "location participates in the key",
			raw:      "WALMART #2717",
			location: "CHARLOTTE NC",
			want:     "walmart 2717 charlotte nc",
		},
		{
			name: "empty input yields empty key",
			raw:  "  ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, tt.location))
		})
	}
}

func TestNormalize_Stable(t *testing.T) {
	// Equal identities always produce equal keys regardless of case or
	// punctuation noise.
	key1 := Normalize("Trader Joe's #123", "Austin TX")
	key2 := Normalize("TRADER JOES  #123", "AUSTIN  TX")
	assert.Equal(t, key1, key2)

	// Tabs and newlines are whitespace, not punctuation: they collapse to a
	// space instead of vanishing.
	assert.Equal(t, Normalize("COFFEE SHOP NO 5", ""), Normalize("COFFEE SHOP\tNO 5", ""))
	assert.Equal(t, "coffee shop no 5", Normalize("COFFEE\nSHOP\tNO 5", ""))
}

func TestClean_ChainRewrites(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"WALMART #2717 CHARLOTTE NC", "Walmart"},
		{"WAL MART SUPERCENTER 0032", "Walmart"},
		{"MCDONALD'S F32385", "McDonald's"},
		{"TST* CHIPOTLE 1268", "Chipotle"},
		{"AMZN MKTP US*RT4Y88", "Amazon"},
		{"UBER EATS HELP.UBER.COM", "Uber Eats"},
		{"DUNKIN #336784 Q35", "Dunkin'"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.raw))
		})
	}
}

func TestClean_StripsStoreCodesAndGeography(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "hash store code removed",
			raw:  "HARDWARE HUT #104",
			want: "Hardware Hut",
		},
		{
			name: "trailing digit run removed",
			raw:  "CITY BAKERY 00231",
			want: "City Bakery",
		},
		{
			name: "trailing state abbreviation removed",
			raw:  "RIVER TACOS TX",
			want: "River Tacos",
		},
		{
			name: "city then state removed",
			raw:  "BLUE BOTTLE COFFEE CHARLOTTE NC",
			want: "Blue Bottle Coffee",
		},
		{
			name: "single token never stripped to nothing",
			raw:  "NC",
			want: "Nc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.raw))
		})
	}
}

func TestClean_TitleCasesUnknownMerchants(t *testing.T) {
	assert.Equal(t, "Corner Books", Clean("CORNER BOOKS"))
	assert.Equal(t, "", Clean("   "))
}

func TestClean_StripsPunctuation(t *testing.T) {
	assert.Equal(t, "Tst Bobs Diner", Clean("TST* BOB'S DINER"))
	assert.Equal(t, "Paypal Acmeco", Clean("PAYPAL *ACME.CO"))
}
