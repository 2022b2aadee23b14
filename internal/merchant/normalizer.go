// Package merchant derives canonical lookup keys and clean display names
// from raw statement text.
package merchant

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nonAlnum       = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSpace     = regexp.MustCompile(`\s+`)
	hashStoreCode  = regexp.MustCompile(`#\s*\d+`)
	trailingDigits = regexp.MustCompile(`\s+\d{2,}$`)
)

// Normalize derives the canonical lookup key for a raw merchant identity.
// The key is lowercase with punctuation stripped and all whitespace runs
// collapsed to single spaces, so equal identities always yield equal keys.
func Normalize(merchantRaw, location string) string {
	s := strings.ToLower(merchantRaw + " " + location)
	s = nonAlnum.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// chainRewrite maps a normalized fragment to the canonical display name of a
// well-known chain. Checked in order so more specific fragments win.
type chainRewrite struct {
	fragment string
	name     string
}

var chainRewrites = []chainRewrite{
	{"walmart", "Walmart"},
	{"wal mart", "Walmart"},
	{"wm supercenter", "Walmart"},
	{"target", "Target"},
	{"costco", "Costco"},
	{"trader joe", "Trader Joe's"},
	{"whole foods", "Whole Foods"},
	{"wholefds", "Whole Foods"},
	{"kroger", "Kroger"},
	{"harris teeter", "Harris Teeter"},
	{"mcdonald", "McDonald's"},
	{"chick fil a", "Chick-fil-A"},
	{"chickfila", "Chick-fil-A"},
	{"starbucks", "Starbucks"},
	{"dunkin", "Dunkin'"},
	{"chipotle", "Chipotle"},
	{"7 eleven", "7-Eleven"},
	{"7eleven", "7-Eleven"},
	{"cvs", "CVS Pharmacy"},
	{"walgreens", "Walgreens"},
	{"home depot", "Home Depot"},
	{"lowes", "Lowe's"},
	{"best buy", "Best Buy"},
	{"amazon mktp", "Amazon"},
	{"amzn mktp", "Amazon"},
	{"amazon", "Amazon"},
	{"uber eats", "Uber Eats"},
	{"uber trip", "Uber"},
	{"doordash", "DoorDash"},
	{"netflix", "Netflix"},
	{"spotify", "Spotify"},
	{"shell oil", "Shell"},
	{"exxonmobil", "Exxon"},
}

// stateAbbrevs are US state/territory codes stripped from trailing merchant
// tokens during cleaning.
var stateAbbrevs = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true, "PR": true,
}

// cityTokens are common statement city suffixes dropped after a state code.
var cityTokens = map[string]bool{
	"charlotte": true, "raleigh": true, "durham": true, "atlanta": true,
	"austin": true, "dallas": true, "houston": true, "chicago": true,
	"seattle": true, "portland": true, "denver": true, "phoenix": true,
	"miami": true, "orlando": true, "tampa": true, "nashville": true,
	"memphis": true, "brooklyn": true, "queens": true, "manhattan": true,
	"columbus": true, "cleveland": true, "cincinnati": true, "boston": true,
	"philadelphia": true, "pittsburgh": true, "baltimore": true,
	"richmond": true, "sacramento": true, "oakland": true, "berkeley": true,
	"pasadena": true, "tucson": true, "albuquerque": true, "omaha": true,
	"tulsa": true, "wichita": true, "louisville": true, "lexington": true,
	"greensboro": true, "winstonsalem": true, "fayetteville": true,
}

var titleCaser = cases.Title(language.AmericanEnglish)

// Clean converts a raw statement merchant string into a human-readable
// display name. Store codes, punctuation, trailing state abbreviations, and
// known city tokens are stripped; well-known chains are rewritten to their
// canonical names; everything else is title-cased.
func Clean(merchantRaw string) string {
	s := strings.TrimSpace(merchantRaw)
	if s == "" {
		return ""
	}

	normalized := Normalize(s, "")
	for _, rw := range chainRewrites {
		if strings.Contains(normalized, rw.fragment) {
			return rw.name
		}
	}

	s = hashStoreCode.ReplaceAllString(s, " ")
	s = trailingDigits.ReplaceAllString(s, "")

	tokens := strings.Fields(s)
	for len(tokens) > 1 {
		last := tokens[len(tokens)-1]
		stripped := nonAlnum.ReplaceAllString(strings.ToLower(last), "")
		if stateAbbrevs[strings.ToUpper(stripped)] || cityTokens[stripped] {
			tokens = tokens[:len(tokens)-1]
			continue
		}
		break
	}

	cleaned := strings.ToLower(strings.Join(tokens, " "))
	cleaned = nonAlnum.ReplaceAllString(cleaned, "")
	cleaned = multiSpace.ReplaceAllString(cleaned, " ")
	return titleCaser.String(strings.TrimSpace(cleaned))
}
