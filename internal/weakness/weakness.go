// Package weakness draws random basic weaknesses for decks, limited to the
// weaknesses a player owns and the deck may legally include.
package weakness

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/arcanaland/deckwright/internal/card"
	"github.com/arcanaland/deckwright/internal/deck"
	"github.com/arcanaland/deckwright/internal/filter"
	"github.com/arcanaland/deckwright/internal/metadata"
	"github.com/arcanaland/deckwright/internal/resolver"
)

// ErrNoWeakness is returned when no basic weakness is left to draw.
var ErrNoWeakness = errors.New("no basic weakness available")

// Collection maps pack codes to the number of copies of the pack owned.
// A nil Collection owns one copy of every pack.
type Collection map[string]int

// Owned returns the number of copies of pack owned.
func (c Collection) Owned(pack string) int {
	if c == nil {
		return 1
	}
	return c[pack]
}

// Candidate is a drawable weakness and the number of copies left to draw.
type Candidate struct {
	Card      *card.Card
	Available int
}

// Candidates returns the basic weaknesses the deck may still draw, ordered by
// code. A weakness is drawable when the deck's access filter admits it and
// the owned copies exceed the copies already in the deck.
func Candidates(meta *metadata.Metadata, lookup *metadata.LookupTables, rd *deck.ResolvedDeck, collection Collection) []Candidate {
	investigator := rd.InvestigatorBack.Card
	access := filter.And(
		func(c *card.Card) bool { return c.IsBasicWeakness() },
		filter.FilterDeckAccess(investigator, rd.AccessOptions(meta, lookup, false)),
	)

	var out []Candidate
	for _, code := range basicWeaknessCodes(meta, lookup) {
		c, err := resolver.ResolveCard(meta, code, rd.TabooSetID, nil)
		if err != nil || !access(c) {
			continue
		}
		available := c.Quantity*collection.Owned(c.PackCode) - rd.Slots[code]
		if available <= 0 {
			continue
		}
		out = append(out, Candidate{Card: c, Available: available})
	}
	return out
}

func basicWeaknessCodes(meta *metadata.Metadata, lookup *metadata.LookupTables) []string {
	if lookup != nil {
		if codes := lookup.SubtypeCode.Get(card.SubtypeBasicWeakness).Codes(); len(codes) > 0 {
			return codes
		}
	}
	var codes []string
	for _, code := range meta.SortedCodes() {
		if meta.Cards[code].IsBasicWeakness() {
			codes = append(codes, code)
		}
	}
	return codes
}

// RandomBasicWeaknessForDeck draws one basic weakness code for the deck,
// weighting each candidate by its available copies. The draw depends only
// on the inputs and the state of rng.
func RandomBasicWeaknessForDeck(meta *metadata.Metadata, lookup *metadata.LookupTables, rd *deck.ResolvedDeck, collection Collection, rng *rand.Rand) (string, error) {
	candidates := Candidates(meta, lookup, rd, collection)
	total := 0
	for _, c := range candidates {
		total += c.Available
	}
	if total == 0 {
		return "", ErrNoWeakness
	}

	n := rng.IntN(total)
	for _, c := range candidates {
		if n < c.Available {
			return c.Card.Code, nil
		}
		n -= c.Available
	}
	return "", ErrNoWeakness
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// NewRand returns a generator seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}
