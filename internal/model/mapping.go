package model

import "time"

// CustomName is a user override of a merchant's display name, keyed by the
// normalized raw identity.
type CustomName struct {
	RawMerchant string
	Location    string
	CustomName  string
	CreatedAt   time.Time
	LastUsed    time.Time
	UseCount    int
}

// RawMapping links a normalized raw identity to a clean merchant name, with
// an optional auto-apply flag for future imports.
type RawMapping struct {
	RawMerchant  string
	Location     string
	MerchantName string
	AutoApply    bool
	CreatedAt    time.Time
	LastUsed     time.Time
	UseCount     int
}
