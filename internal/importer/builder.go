package importer

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/model"
	"github.com/ledgerkeep/ledgerkeep/internal/suggest"
)

// Preferences is the slice of the preference store the builder consults
// while assembling proposals.
type Preferences interface {
	Resolve(ctx context.Context, raw, location string) string
	RecordMappingUsage(ctx context.Context, raw, location string)
	CustomName(ctx context.Context, raw, location string) string
	RecordNameUsage(ctx context.Context, raw, location string)
	ResolveFinalName(ctx context.Context, raw, location string) string
	ShouldAutoApply(ctx context.Context, merchantName string) bool
	MainDefault(ctx context.Context, merchantName string) *model.Default
	ApplyDefault(ctx context.Context, merchantName, name string) *model.Default
}

// Builder assembles proposed transactions from raw records, consulting the
// preference store and the suggestion engine.
type Builder struct {
	prefs           Preferences
	engine          *suggest.Engine
	accountSubType  string
	accountCategory string
}

// NewBuilder creates a proposal builder for one account.
func NewBuilder(prefs Preferences, engine *suggest.Engine, accountSubType, accountCategory string) *Builder {
	return &Builder{
		prefs:           prefs,
		engine:          engine,
		accountSubType:  accountSubType,
		accountCategory: accountCategory,
	}
}

// Propose builds one proposed transaction per raw record.
func (b *Builder) Propose(ctx context.Context, records []model.RawRecord) []model.ProposedTransaction {
	proposals := make([]model.ProposedTransaction, 0, len(records))
	for _, record := range records {
		proposals = append(proposals, b.propose(ctx, record))
	}
	return proposals
}

func (b *Builder) propose(ctx context.Context, record model.RawRecord) model.ProposedTransaction {
	location := record.Location()

	// Raw mapping wins over the custom-name/clean resolution chain.
	merchantName := b.prefs.Resolve(ctx, record.MerchantRaw, location)
	mapped := merchantName != ""
	if mapped {
		b.prefs.RecordMappingUsage(ctx, record.MerchantRaw, location)
	} else {
		if custom := b.prefs.CustomName(ctx, record.MerchantRaw, location); custom != "" {
			b.prefs.RecordNameUsage(ctx, record.MerchantRaw, location)
		}
		merchantName = b.prefs.ResolveFinalName(ctx, record.MerchantRaw, location)
	}

	inferredType := suggest.InferType(record, b.accountSubType, b.accountCategory)
	suggestion := b.engine.Suggest(ctx, record.Description, merchantName, record.ExtendedDetails)
	if suggestion.Type == "" {
		suggestion.Type = inferredType
	}

	description := record.Description
	if description == "" {
		description = merchantName
	}

	proposal := model.ProposedTransaction{
		ID:           model.TransactionID(record.Reference),
		Original:     record,
		Suggested:    suggestion,
		MerchantName: merchantName,
		Location:     location,
		Description:  description,
		Type:         inferredType,
	}

	if suggestion.Parent != "" {
		proposal.Category = suggestion.Parent
		proposal.SubCategory = suggestion.Sub
		proposal.AutoSuggested = true
	}

	// Auto-apply: a flagged merchant's main default fills the proposal
	// without manual selection.
	if mapped && b.prefs.ShouldAutoApply(ctx, merchantName) {
		if main := b.prefs.MainDefault(ctx, merchantName); main != nil {
			if applied := b.prefs.ApplyDefault(ctx, merchantName, main.Name); applied != nil {
				main = applied
			}
			proposal.Category = main.Category
			proposal.SubCategory = main.SubCategory
			proposal.Notes = main.Notes
			proposal.IsRecurring = main.IsRecurring
			if main.Type != "" {
				proposal.Type = main.Type
			}
			proposal.AutoSuggested = true
		}
	}

	return proposal
}
