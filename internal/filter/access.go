package filter

import (
	"github.com/arcanaland/deckwright/internal/card"
	"github.com/arcanaland/deckwright/internal/metadata"
)

// AccessOptions configure the investigator access filters. The resulting
// filters are pure functions of the card, the investigator and these options.
type AccessOptions struct {
	Selections Selections
	Metadata   *metadata.Metadata
	Lookup     *metadata.LookupTables
	// InvestigatorCodes are additional codes whose signature cards the deck
	// may use, e.g. the front of a parallel investigator.
	InvestigatorCodes []string
	// CardPool limits legal cards to pack or cycle codes. Empty means no limit.
	CardPool []string
	// Sealed limits legal cards to an explicit allowlist. Nil means no limit.
	Sealed map[string]int
	// ExtraDeck selects the investigator's side deck options.
	ExtraDeck bool
}

// FilterInvestigatorAccess returns the predicate deciding which cards the
// investigator's deckbuilding options admit. Signature cards bypass deck
// options and are admitted for their listed investigators only.
func FilterInvestigatorAccess(investigator *card.Card, opts AccessOptions) Filter {
	options := investigator.DeckOptions
	if opts.ExtraDeck {
		options = investigator.SideDeckOptions
	}
	in := NewInterpreter(options, Context{Selections: opts.Selections, Lookup: opts.Lookup})
	codes := investigatorCodes(investigator, opts)

	return func(c *card.Card) bool {
		if c.IsSignature() {
			return signatureAllowed(c, codes)
		}
		if !traitRestrictionAllowed(c, investigator) {
			return false
		}
		return in.Match(c).Admitted()
	}
}

// FilterInvestigatorWeaknessAccess returns the predicate admitting weaknesses:
// unrestricted basic weaknesses, weaknesses restricted to this investigator
// or its traits, and weaknesses named by its deck requirements.
func FilterInvestigatorWeaknessAccess(investigator *card.Card, opts AccessOptions) Filter {
	codes := investigatorCodes(investigator, opts)
	required := requiredCodes(investigator)

	return func(c *card.Card) bool {
		if !c.IsWeakness() {
			return false
		}
		if _, ok := required[c.Code]; ok {
			return true
		}
		if c.Restrictions == nil {
			return c.IsBasicWeakness()
		}
		if c.IsSignature() {
			return signatureAllowed(c, codes)
		}
		return traitRestrictionAllowed(c, investigator)
	}
}

// FilterDeckAccess composes investigator and weakness access with the card
// pool, sealed and system restrictions. It is the authoritative legality
// predicate for deck contents.
func FilterDeckAccess(investigator *card.Card, opts AccessOptions) Filter {
	access := FilterInvestigatorAccess(investigator, opts)
	if !opts.ExtraDeck {
		access = Or(access, FilterInvestigatorWeaknessAccess(investigator, opts))
	}
	return And(
		access,
		SystemExclusions,
		CardPool(opts.Metadata, opts.Lookup, opts.CardPool),
		Sealed(opts.Lookup, opts.Sealed),
	)
}

// SystemExclusions rejects cards that never belong in a deck: back faces,
// investigators, non-weakness encounter cards and cards with a zero deck limit.
func SystemExclusions(c *card.Card) bool {
	switch {
	case c.Hidden:
		return false
	case c.TypeCode == card.TypeInvestigator:
		return false
	case c.EncounterCode != "" && !c.IsWeakness():
		return false
	case c.DeckLimit != nil && *c.DeckLimit == 0:
		return false
	}
	return true
}

// CardPool admits cards whose pack, the pack's cycle, or a reprint's pack is
// in pool. An empty pool admits everything.
func CardPool(meta *metadata.Metadata, lookup *metadata.LookupTables, pool []string) Filter {
	if len(pool) == 0 {
		return nil
	}
	allowed := make(map[string]struct{}, len(pool))
	for _, code := range pool {
		allowed[code] = struct{}{}
	}
	inPool := func(c *card.Card) bool {
		if _, ok := allowed[c.PackCode]; ok {
			return true
		}
		if meta == nil {
			return false
		}
		_, ok := allowed[meta.CycleOf(c.PackCode)]
		return ok
	}

	return func(c *card.Card) bool {
		if inPool(c) {
			return true
		}
		if meta == nil {
			return false
		}
		for _, code := range Reprints(c, lookup) {
			if dup, ok := meta.Card(code); ok && inPool(dup) {
				return true
			}
		}
		return false
	}
}

// Sealed admits cards whose code, or a reprint's code, is in the allowlist.
// A nil allowlist admits everything.
func Sealed(lookup *metadata.LookupTables, sealed map[string]int) Filter {
	if sealed == nil {
		return nil
	}
	return func(c *card.Card) bool {
		if _, ok := sealed[c.Code]; ok {
			return true
		}
		for _, code := range Reprints(c, lookup) {
			if _, ok := sealed[code]; ok {
				return true
			}
		}
		return false
	}
}

// Reprints returns the codes of other printings of c, one hop.
func Reprints(c *card.Card, lookup *metadata.LookupTables) []string {
	var codes []string
	if c.DuplicateOfCode != "" {
		codes = append(codes, c.DuplicateOfCode)
	}
	if lookup != nil {
		for _, code := range lookup.Relations.Duplicates.Get(c.Code).Codes() {
			if code != c.Code && code != c.DuplicateOfCode {
				codes = append(codes, code)
			}
		}
	}
	return codes
}

func investigatorCodes(investigator *card.Card, opts AccessOptions) map[string]struct{} {
	codes := map[string]struct{}{investigator.Code: {}}
	if investigator.AlternateOfCode != "" {
		codes[investigator.AlternateOfCode] = struct{}{}
	}
	if investigator.DuplicateOfCode != "" {
		codes[investigator.DuplicateOfCode] = struct{}{}
	}
	for _, code := range opts.InvestigatorCodes {
		codes[code] = struct{}{}
	}
	return codes
}

func signatureAllowed(c *card.Card, codes map[string]struct{}) bool {
	for code := range codes {
		if c.Restrictions.AllowsInvestigator(code) {
			return true
		}
	}
	return false
}

func traitRestrictionAllowed(c *card.Card, investigator *card.Card) bool {
	if c.Restrictions == nil || len(c.Restrictions.Trait) == 0 {
		return true
	}
	for _, t := range c.Restrictions.Trait {
		if investigator.HasTrait(t) {
			return true
		}
	}
	return false
}

func requiredCodes(investigator *card.Card) map[string]struct{} {
	codes := make(map[string]struct{})
	if investigator.DeckRequirements == nil {
		return codes
	}
	for code, alternatives := range investigator.DeckRequirements.Card {
		codes[code] = struct{}{}
		for alt := range alternatives {
			codes[alt] = struct{}{}
		}
	}
	return codes
}
