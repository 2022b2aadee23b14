package suggest

import (
	"strings"

	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

// paymentPhrases identify card-payment rows regardless of account type.
var paymentPhrases = []string{
	"payment - thank you",
	"payment received",
	"autopay payment",
	"online payment thank you",
}

// debtAccountTypes are account subtypes/categories where a positive amount
// means a payment toward the balance rather than income.
var debtAccountTypes = map[string]bool{
	"credit":         true,
	"credit card":    true,
	"loan":           true,
	"debt":           true,
	"line of credit": true,
}

// InferType derives the advisory transaction type for a raw record. Learned
// preferences and named defaults may override it downstream.
func InferType(record model.RawRecord, accountSubType, accountCategory string) string {
	text := strings.ToLower(record.Description + " " + record.MerchantRaw)
	for _, phrase := range paymentPhrases {
		if strings.Contains(text, phrase) {
			return model.TypePayment
		}
	}

	if debtAccountTypes[strings.ToLower(accountSubType)] || debtAccountTypes[strings.ToLower(accountCategory)] {
		if record.Amount.IsPositive() {
			return model.TypePayment
		}
		return model.TypeExpense
	}

	if record.Amount.IsPositive() {
		return model.TypeIncome
	}
	return model.TypeExpense
}
