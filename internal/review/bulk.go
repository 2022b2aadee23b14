// Package review owns the in-session set of proposed transactions: bulk
// matching, batch mutation, and the approval workflow.
package review

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/merchant"
	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

// Match pairs a transaction with its index in the session collection.
type Match struct {
	Transaction model.ProposedTransaction
	Index       int
}

// FindMatches returns every transaction whose normalized raw identity equals
// the target's, including the target itself. Exact-match only.
func FindMatches(transactions []model.ProposedTransaction, target model.ProposedTransaction) []Match {
	targetKey := merchant.Normalize(target.Original.MerchantRaw, target.Original.Location())

	var matches []Match
	for i, txn := range transactions {
		key := merchant.Normalize(txn.Original.MerchantRaw, txn.Original.Location())
		if key == targetKey {
			matches = append(matches, Match{Index: i, Transaction: txn})
		}
	}
	return matches
}

// CategoryPatch describes a partial category rewrite. Nil fields are left
// untouched, so a patch can never accidentally blank a field.
type CategoryPatch struct {
	Category    *string
	SubCategory *string
	Notes       *string
}

// ApplyCategory returns a new collection with the patch applied at the given
// indices. The input is never mutated; callers swap in the result, so a
// mid-operation failure cannot leave a partially applied state.
func ApplyCategory(transactions []model.ProposedTransaction, indices []int, patch CategoryPatch) []model.ProposedTransaction {
	out := make([]model.ProposedTransaction, len(transactions))
	copy(out, transactions)

	for _, i := range indices {
		if i < 0 || i >= len(out) {
			continue
		}
		if patch.Category != nil {
			out[i].Category = *patch.Category
		}
		if patch.SubCategory != nil {
			out[i].SubCategory = *patch.SubCategory
		}
		if patch.Notes != nil {
			out[i].Notes = *patch.Notes
		}
	}
	return out
}

// ApplyMerchantName returns a new collection with the merchant name
// rewritten at the given indices. Each rewritten transaction keeps its
// original raw merchant in the audit field.
func ApplyMerchantName(transactions []model.ProposedTransaction, indices []int, name string) []model.ProposedTransaction {
	out := make([]model.ProposedTransaction, len(transactions))
	copy(out, transactions)

	for _, i := range indices {
		if i < 0 || i >= len(out) {
			continue
		}
		if out[i].RawMerchantAudit == "" {
			out[i].RawMerchantAudit = out[i].Original.MerchantRaw
		}
		out[i].MerchantName = name
	}
	return out
}

// DateRange is the inclusive date span of a match set.
type DateRange struct {
	Earliest time.Time
	Latest   time.Time
}

// PreviewRow is one line of the pre-commit confirmation preview.
type PreviewRow struct {
	Date        time.Time
	Merchant    string
	Category    string
	SubCategory string
	Amount      decimal.Decimal
}

// Summary aggregates a match set for the pre-commit confirmation.
type Summary struct {
	DateRange   *DateRange
	Preview     []PreviewRow
	TotalAmount decimal.Decimal
	Count       int
}

// summaryPreviewLimit caps the confirmation preview.
const summaryPreviewLimit = 3

// Summarize aggregates a match set: count, signed amount total, date range,
// and a short preview.
func Summarize(matches []Match) Summary {
	summary := Summary{Count: len(matches)}

	for _, m := range matches {
		summary.TotalAmount = summary.TotalAmount.Add(m.Transaction.Original.Amount)

		date := m.Transaction.Original.Date
		if summary.DateRange == nil {
			summary.DateRange = &DateRange{Earliest: date, Latest: date}
		} else {
			if date.Before(summary.DateRange.Earliest) {
				summary.DateRange.Earliest = date
			}
			if date.After(summary.DateRange.Latest) {
				summary.DateRange.Latest = date
			}
		}

		if len(summary.Preview) < summaryPreviewLimit {
			summary.Preview = append(summary.Preview, PreviewRow{
				Date:        date,
				Amount:      m.Transaction.Original.Amount,
				Merchant:    m.Transaction.MerchantName,
				Category:    m.Transaction.Category,
				SubCategory: m.Transaction.SubCategory,
			})
		}
	}
	return summary
}
