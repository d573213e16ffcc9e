package metadata

import "sort"

// CodeSet is a set of card codes. Values are membership markers, as in the
// exported lookup table files ({"01001": 1}).
type CodeSet map[string]int

// Has reports whether code is in the set.
func (s CodeSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the members in ascending order.
func (s CodeSet) Codes() []string {
	codes := make([]string, 0, len(s))
	for code := range s {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Index maps a key (card code, trait, uses kind, ...) to a set of card codes.
type Index map[string]CodeSet

// Get returns the set for key; a missing key yields an empty set.
func (i Index) Get(key string) CodeSet {
	if i == nil {
		return nil
	}
	return i[key]
}

// Relations are reverse indices between cards, keyed by the source card code.
type Relations struct {
	Advanced        Index `json:"advanced"`
	Base            Index `json:"base"`
	Bonded          Index `json:"bonded"`
	Bound           Index `json:"bound"`
	Duplicates      Index `json:"duplicates"`
	Level           Index `json:"level"`
	OtherSignatures Index `json:"otherSignatures"`
	OtherVersions   Index `json:"otherVersions"`
	Parallel        Index `json:"parallel"`
	ParallelCards   Index `json:"parallelCards"`
	Replacement     Index `json:"replacement"`
	RequiredCards   Index `json:"requiredCards"`
	RestrictedTo    Index `json:"restrictedTo"`
}

// LookupTables are precomputed indices over the card database. They are
// supplied fully formed and treated as immutable.
type LookupTables struct {
	Relations   Relations `json:"relations"`
	TypeCode    Index     `json:"typeCode"`
	SubtypeCode Index     `json:"subtypeCode"`
	Traits      Index     `json:"traits"`
	Actions     Index     `json:"actions"`
	Uses        Index     `json:"uses"`
}

// NewLookupTables returns empty tables.
func NewLookupTables() *LookupTables {
	return &LookupTables{}
}

// HasUses reports whether the card with code is indexed under the uses kind.
func (l *LookupTables) HasUses(kind, code string) bool {
	if l == nil {
		return false
	}
	return l.Uses.Get(kind).Has(code)
}
