package model

import "time"

// MaxRetainedChoices caps the per-merchant choice history. Older entries are
// dropped first.
const MaxRetainedChoices = 10

// CategoryChoice is one accepted categorization decision for a merchant.
type CategoryChoice struct {
	Category    string
	SubCategory string
	AccountType string
	Type        string
	CreatedAt   time.Time
}

// CategoryPair identifies a category/subcategory combination.
type CategoryPair struct {
	Category    string
	SubCategory string
}

// MerchantHistory tracks the retained category choices for one merchant and
// the confidence-weighted most common pick.
type MerchantHistory struct {
	OriginalName string
	Choices      []CategoryChoice
	MostCommon   *CategoryPair
	Confidence   float64
}

// Add appends a choice, trims to the retention cap, and recomputes the most
// common pair and its confidence.
func (h *MerchantHistory) Add(choice CategoryChoice) {
	h.Choices = append(h.Choices, choice)
	if len(h.Choices) > MaxRetainedChoices {
		h.Choices = h.Choices[len(h.Choices)-MaxRetainedChoices:]
	}
	h.Recompute()
}

// Recompute derives MostCommon and Confidence from the retained choices.
// Ties resolve to the first-recorded pair among those holding the max count.
func (h *MerchantHistory) Recompute() {
	if len(h.Choices) == 0 {
		h.MostCommon = nil
		h.Confidence = 0
		return
	}

	counts := make(map[CategoryPair]int, len(h.Choices))
	bestCount := 0
	for _, c := range h.Choices {
		pair := CategoryPair{Category: c.Category, SubCategory: c.SubCategory}
		counts[pair]++
		if counts[pair] > bestCount {
			bestCount = counts[pair]
		}
	}

	var best CategoryPair
	for _, c := range h.Choices {
		pair := CategoryPair{Category: c.Category, SubCategory: c.SubCategory}
		if counts[pair] == bestCount {
			best = pair
			break
		}
	}

	h.MostCommon = &best
	h.Confidence = float64(bestCount) / float64(len(h.Choices))
}
