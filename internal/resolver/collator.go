package resolver

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator compares names for presentation order. *collate.Collator
// satisfies it. Collation never influences legality.
type Collator interface {
	CompareString(a, b string) int
}

// NewCollator returns a case-insensitive collator for the BCP 47 locale tag.
// Unknown tags fall back to English.
func NewCollator(locale string) *collate.Collator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return collate.New(tag, collate.IgnoreCase, collate.Loose)
}

func compareNames(collator Collator, a, b string) int {
	if collator == nil {
		return strings.Compare(a, b)
	}
	return collator.CompareString(a, b)
}
