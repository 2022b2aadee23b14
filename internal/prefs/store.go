// Package prefs implements the preference services that learn from review
// corrections: the custom name registry, the merchant history learner, the
// named defaults store, and the raw mapping store.
//
// Persistence failures are logged and degrade to empty results rather than
// propagating. Losing preference data only degrades suggestion quality; it
// never blocks an import.
package prefs

import (
	"github.com/ledgerkeep/ledgerkeep/internal/common"
	"github.com/ledgerkeep/ledgerkeep/internal/service"
)

// Store is the preference service facade, constructed once and injected into
// the suggestion and review components.
type Store struct {
	storage service.Storage
}

// New creates a preference store backed by the given storage.
func New(storage service.Storage) *Store {
	return &Store{storage: storage}
}

// degraded logs a persistence failure that was swallowed in favor of
// availability.
func (s *Store) degraded(op string, err error) {
	common.LogWarn("preference store degraded", common.Fields{"op": op, "error": err})
}
