// Package importer converts raw statement rows into proposed transactions
// ready for review.
package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/model"
)

// Statement columns, matched case-insensitively. "Appears On Your Statement
// As" falls back to "Description" for the raw merchant text.
const (
	colDate            = "date"
	colStatementAs     = "appears on your statement as"
	colAddress         = "address"
	colCityState       = "city/state"
	colZipCode         = "zip code"
	colExtendedDetails = "extended details"
	colDescription     = "description"
	colCategory        = "category"
	colAmount          = "amount"
	colReference       = "reference"
)

// dateFormats are tried in order when parsing the statement date.
var dateFormats = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"01/02/06",
	"Jan 2, 2006",
}

// RecordFromRow builds an immutable RawRecord from one string-keyed row
// dictionary. Header names match case-insensitively; missing columns default
// to empty values.
func RecordFromRow(row map[string]string) model.RawRecord {
	fields := make(map[string]string, len(row))
	for k, v := range row {
		fields[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}

	merchantRaw := fields[colStatementAs]
	if merchantRaw == "" {
		merchantRaw = fields[colDescription]
	}

	return model.RawRecord{
		Date:            parseDate(fields[colDate]),
		MerchantRaw:     merchantRaw,
		Address:         fields[colAddress],
		CityState:       fields[colCityState],
		ZipCode:         fields[colZipCode],
		ExtendedDetails: fields[colExtendedDetails],
		Description:     fields[colDescription],
		SourceCategory:  fields[colCategory],
		Amount:          parseAmount(fields[colAmount]),
		Reference:       fields[colReference],
	}
}

func parseDate(s string) time.Time {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseAmount tolerates currency symbols, thousands separators, and
// parenthesized negatives. Unparseable amounts become zero.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		amount = amount.Neg()
	}
	return amount
}
