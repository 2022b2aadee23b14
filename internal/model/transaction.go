// Package model defines the core types shared across the import, suggestion,
// and review components.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction types produced by inference and carried through review.
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
	TypePayment = "payment"
)

// PlaceholderCategory is the UI placeholder value that must never be recorded
// as a real category choice.
const PlaceholderCategory = "Select Category"

// Suggestion sources, in descending precedence.
const (
	SourceMerchantHistory = "merchant_history"
	SourceKeywords        = "keywords"
	SourceDefault         = "default"
)

// RawRecord is an immutable snapshot of a single statement row as handed over
// by the CSV collaborator. It is never mutated after import.
type RawRecord struct {
	Date            time.Time
	MerchantRaw     string
	Address         string
	CityState       string
	ZipCode         string
	ExtendedDetails string
	Description     string
	SourceCategory  string
	Reference       string
	Amount          decimal.Decimal
}

// Location returns the location component used for identity normalization.
func (r RawRecord) Location() string {
	return r.CityState
}

// Suggestion is the proposal produced by the suggestion engine for one
// transaction.
type Suggestion struct {
	Parent     string
	Sub        string
	Source     string
	Type       string
	Confidence float64
	UseCount   int
}

// ProposedTransaction pairs an imported row with its system-suggested and
// user-editable categorization fields, pending approval.
type ProposedTransaction struct {
	ID        string
	Original  RawRecord
	Suggested Suggestion

	// User-editable proposal fields.
	MerchantName string
	Location     string
	Description  string
	Type         string
	Category     string
	SubCategory  string
	Notes        string
	IsRecurring  bool

	// AutoSuggested marks proposals filled in without user input.
	AutoSuggested bool

	// RawMerchantAudit preserves the original raw merchant text when a bulk
	// rename overwrites MerchantName.
	RawMerchantAudit string

	Approved bool
}

// IsValid reports whether the proposal is complete enough to approve.
// Expense transactions additionally require a subcategory.
func (p ProposedTransaction) IsValid() bool {
	if p.MerchantName == "" || p.Description == "" || p.Type == "" || p.Category == "" {
		return false
	}
	if p.Type == TypeExpense && p.SubCategory == "" {
		return false
	}
	return true
}

// TransactionID returns the bank reference when present, otherwise a
// generated unique identifier.
func TransactionID(reference string) string {
	if ref := strings.TrimSpace(reference); ref != "" {
		return ref
	}
	return uuid.NewString()
}

// Recordable reports whether a category choice qualifies for the merchant
// history. Income choices never require a subcategory.
func Recordable(category, subCategory, transactionType string) bool {
	if isBlankOrPlaceholder(category) {
		return false
	}
	if transactionType == TypeExpense && isBlankOrPlaceholder(subCategory) {
		return false
	}
	return true
}

func isBlankOrPlaceholder(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == PlaceholderCategory
}

// FinalizedTransaction is the record handed back to the caller for each
// approved transaction at finalize time.
type FinalizedTransaction struct {
	AccountID    string    `json:"account_id"`
	Date         time.Time `json:"transaction_date"`
	Amount       float64   `json:"amount"`
	MerchantName string    `json:"merchant_name"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Type         string    `json:"type"`
	CategoryID   string    `json:"category_id"`
	SubCategory  string    `json:"subCategory"`
	IsRecurring  bool      `json:"is_recurring"`
	Notes        string    `json:"notes"`
}
