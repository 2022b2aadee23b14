package review

import (
	"context"
	"math"

	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

// ChoiceRecorder teaches the merchant history learner at finalize time.
type ChoiceRecorder interface {
	RecordChoice(ctx context.Context, merchantName, category, subCategory, accountType, transactionType string) bool
}

// DefaultChecker reports whether a merchant has an applicable default for
// bulk approval.
type DefaultChecker interface {
	HasApplicableDefault(ctx context.Context, merchantName, transactionType string) bool
}

// undoEntry captures a transaction's approval state before an action, so
// Undo can restore it without re-running suggestion.
type undoEntry struct {
	id          string
	wasApproved bool
}

// Session is the review state machine over one import's proposed
// transactions. A transaction is either approved at finalize or discarded
// with the whole session; there is no delete state.
type Session struct {
	learner      ChoiceRecorder
	defaults     DefaultChecker
	accountID    string
	accountType  string
	parseError   string
	transactions []model.ProposedTransaction
	undo         []undoEntry
}

// NewSession creates a review session. learner and defaults may be nil for
// sessions that never finalize or bulk-approve.
func NewSession(learner ChoiceRecorder, defaults DefaultChecker, accountID, accountType string) *Session {
	return &Session{
		learner:     learner,
		defaults:    defaults,
		accountID:   accountID,
		accountType: accountType,
	}
}

// Load replaces the session's transactions and clears all bookkeeping.
func (s *Session) Load(transactions []model.ProposedTransaction) {
	s.transactions = make([]model.ProposedTransaction, len(transactions))
	copy(s.transactions, transactions)
	s.undo = nil
	s.parseError = ""
}

// Fail records a parse failure from the CSV collaborator. The session keeps
// no transactions and stays on the upload step.
func (s *Session) Fail(message string) {
	s.parseError = message
	s.transactions = nil
	s.undo = nil
}

// Err returns the session-level error string, or "".
func (s *Session) Err() string {
	return s.parseError
}

// Transactions returns a copy of the session's transactions.
func (s *Session) Transactions() []model.ProposedTransaction {
	out := make([]model.ProposedTransaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Replace swaps in a new collection produced by a batch applier. The length
// must match; IDs are assumed stable.
func (s *Session) Replace(transactions []model.ProposedTransaction) bool {
	if len(transactions) != len(s.transactions) {
		return false
	}
	s.transactions = transactions
	return true
}

// Get returns a copy of one transaction by ID.
func (s *Session) Get(id string) (model.ProposedTransaction, bool) {
	if i := s.index(id); i >= 0 {
		return s.transactions[i], true
	}
	return model.ProposedTransaction{}, false
}

// Update applies an edit to a pending transaction. Edits keep the
// transaction in the proposed state; approved transactions must be
// unapproved first.
func (s *Session) Update(id string, edit func(*model.ProposedTransaction)) bool {
	i := s.index(id)
	if i < 0 || s.transactions[i].Approved {
		return false
	}
	edit(&s.transactions[i])
	s.transactions[i].Approved = false
	return true
}

// Approve moves one pending transaction to the approved set.
func (s *Session) Approve(id string) bool {
	i := s.index(id)
	if i < 0 || s.transactions[i].Approved {
		return false
	}
	s.pushUndo(s.transactions[i])
	s.transactions[i].Approved = true
	return true
}

// ApproveAllValid approves every pending transaction that passes the
// validity predicate. Undo entries are pushed in approval order, so Undo
// restores the most recently approved first.
func (s *Session) ApproveAllValid() int {
	approved := 0
	for i := range s.transactions {
		if s.transactions[i].Approved || !s.transactions[i].IsValid() {
			continue
		}
		s.pushUndo(s.transactions[i])
		s.transactions[i].Approved = true
		approved++
	}
	return approved
}

// ApproveAllWithDefaults approves every pending, valid transaction whose
// merchant has at least one applicable default, whether or not a default has
// actually been applied yet.
func (s *Session) ApproveAllWithDefaults(ctx context.Context) int {
	if s.defaults == nil {
		return 0
	}
	approved := 0
	for i := range s.transactions {
		txn := &s.transactions[i]
		if txn.Approved || !txn.IsValid() {
			continue
		}
		if !s.defaults.HasApplicableDefault(ctx, txn.MerchantName, txn.Type) {
			continue
		}
		s.pushUndo(*txn)
		txn.Approved = true
		approved++
	}
	return approved
}

// Undo reverts the most recent approval-state change.
func (s *Session) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	entry := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]

	if i := s.index(entry.id); i >= 0 {
		s.transactions[i].Approved = entry.wasApproved
		return true
	}
	return false
}

// Unapprove returns a single approved transaction to review.
func (s *Session) Unapprove(id string) bool {
	i := s.index(id)
	if i < 0 || !s.transactions[i].Approved {
		return false
	}
	s.pushUndo(s.transactions[i])
	s.transactions[i].Approved = false
	return true
}

// Reset bulk-unapproves everything and clears the undo stack.
func (s *Session) Reset() {
	for i := range s.transactions {
		s.transactions[i].Approved = false
	}
	s.undo = nil
}

// Finalize teaches the learner from every approved transaction that passes
// the recordability rule, emits the finalized set, and clears the session.
func (s *Session) Finalize(ctx context.Context) []model.FinalizedTransaction {
	var finalized []model.FinalizedTransaction
	for i := range s.transactions {
		txn := &s.transactions[i]
		if !txn.Approved {
			continue
		}

		if s.learner != nil && model.Recordable(txn.Category, txn.SubCategory, txn.Type) {
			s.learner.RecordChoice(ctx, txn.MerchantName, txn.Category, txn.SubCategory, s.accountType, txn.Type)
		}

		finalized = append(finalized, model.FinalizedTransaction{
			AccountID:    s.accountID,
			Date:         txn.Original.Date,
			Amount:       txn.Original.Amount.InexactFloat64(),
			MerchantName: txn.MerchantName,
			Location:     txn.Location,
			Description:  txn.Description,
			Type:         txn.Type,
			CategoryID:   txn.Category,
			SubCategory:  txn.SubCategory,
			IsRecurring:  txn.IsRecurring,
			Notes:        txn.Notes,
		})
	}

	s.transactions = nil
	s.undo = nil
	return finalized
}

// Progress returns the rounded percentage of approved transactions.
func (s *Session) Progress() int {
	if len(s.transactions) == 0 {
		return 0
	}
	return int(math.Round(float64(s.ApprovedCount()) / float64(len(s.transactions)) * 100))
}

// ApprovedCount returns the number of approved transactions.
func (s *Session) ApprovedCount() int {
	count := 0
	for i := range s.transactions {
		if s.transactions[i].Approved {
			count++
		}
	}
	return count
}

// PendingCount returns the number of transactions still in review.
func (s *Session) PendingCount() int {
	return len(s.transactions) - s.ApprovedCount()
}

// Len returns the total number of transactions in the session.
func (s *Session) Len() int {
	return len(s.transactions)
}

func (s *Session) index(id string) int {
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) pushUndo(txn model.ProposedTransaction) {
	s.undo = append(s.undo, undoEntry{id: txn.ID, wasApproved: txn.Approved})
}
