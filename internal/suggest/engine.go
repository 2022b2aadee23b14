// Package suggest combines learned merchant history, static keyword rules,
// and type-inference heuristics into a single category proposal.
package suggest

import (
	"context"
	"strings"

	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

// HistorySource supplies learned merchant preferences. Implementations
// return nil when the merchant is unknown or below the confidence floor.
type HistorySource interface {
	Preference(ctx context.Context, merchantName string) *model.Suggestion
}

// Engine resolves suggestions in fixed precedence: merchant history, then
// keyword rules, then an empty default.
type Engine struct {
	history HistorySource
}

// NewEngine creates a suggestion engine. history may be nil, in which case
// only keyword rules apply.
func NewEngine(history HistorySource) *Engine {
	return &Engine{history: history}
}

// Suggest proposes a category for one transaction. The description, merchant
// name, and extended details are all searched for keyword hits.
func (e *Engine) Suggest(ctx context.Context, description, merchantName, extendedDetails string) model.Suggestion {
	if e.history != nil {
		if pref := e.history.Preference(ctx, merchantName); pref != nil {
			return *pref
		}
	}

	haystack := strings.ToLower(description + " " + merchantName + " " + extendedDetails)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if !strings.Contains(haystack, kw) {
				continue
			}
			sub := rule.sub
			if IsExpenseCategory(rule.parent) {
				if matched := matchSubcategory(rule.parent, haystack); matched != "" {
					sub = matched
				}
			}
			return model.Suggestion{
				Parent:     rule.parent,
				Sub:        sub,
				Confidence: rule.confidence,
				Source:     model.SourceKeywords,
				Type:       rule.txType,
			}
		}
	}

	return model.Suggestion{Source: model.SourceDefault}
}

// matchSubcategory scans the parent's subcategory list for a name that
// appears verbatim in the haystack.
func matchSubcategory(parent, haystack string) string {
	for _, sub := range Subcategories(parent) {
		if strings.Contains(haystack, strings.ToLower(sub)) {
			return sub
		}
	}
	return ""
}
