package resolver

import (
	"sort"

	"github.com/arcanaland/deckwright/internal/card"
	"github.com/arcanaland/deckwright/internal/metadata"
)

// CardWithRelations is a resolved card plus, when requested, its related cards.
type CardWithRelations struct {
	Card      *card.Card
	Relations *Relations
}

// Relations holds the cards related to a resolved card. Every field is
// independently optional; absence is not an error. Related cards are
// resolved one hop deep and carry no relations of their own.
type Relations struct {
	Base            *card.Card
	Parallel        *card.Card
	RestrictedTo    *card.Card
	Advanced        []*card.Card
	Bonded          []*card.Card
	Bound           []*card.Card
	Duplicates      []*card.Card
	Level           []*card.Card
	OtherSignatures []*card.Card
	OtherVersions   []*card.Card
	ParallelCards   []*card.Card
	Replacement     []*card.Card
	RequiredCards   []*card.Card
}

// Request bundles the inputs of a relation-aware resolution.
type Request struct {
	Code           string
	TabooSetID     *int
	Customizations Customizations
	WithRelations  bool
}

// ResolveCardWithRelations resolves req.Code and, when req.WithRelations is set,
// attaches the related cards found in lookup. collator orders relation lists
// by name and may be nil.
func ResolveCardWithRelations(meta *metadata.Metadata, lookup *metadata.LookupTables, collator Collator, req Request) (*CardWithRelations, error) {
	c, err := ResolveCard(meta, req.Code, req.TabooSetID, req.Customizations)
	if err != nil {
		return nil, err
	}

	resolved := &CardWithRelations{Card: c}
	if !req.WithRelations || lookup == nil {
		return resolved, nil
	}

	r := relationResolver{
		meta:     meta,
		collator: collator,
		code:     req.Code,
		taboo:    req.TabooSetID,
		cus:      req.Customizations,
	}
	rel := lookup.Relations

	resolved.Relations = &Relations{
		Base:            r.one(rel.Base),
		Parallel:        r.one(rel.Parallel),
		RestrictedTo:    r.one(rel.RestrictedTo),
		Advanced:        r.many(rel.Advanced),
		Bonded:          r.many(rel.Bonded),
		Bound:           r.many(rel.Bound),
		Duplicates:      r.many(rel.Duplicates),
		Level:           r.many(rel.Level),
		OtherSignatures: r.many(rel.OtherSignatures),
		OtherVersions:   r.many(rel.OtherVersions),
		ParallelCards:   r.many(rel.ParallelCards),
		Replacement:     r.many(rel.Replacement),
		RequiredCards:   r.many(rel.RequiredCards),
	}
	return resolved, nil
}

type relationResolver struct {
	meta     *metadata.Metadata
	collator Collator
	code     string
	taboo    *int
	cus      Customizations
}

// one resolves the first related code; used for relations with a single target.
func (r relationResolver) one(idx metadata.Index) *card.Card {
	for _, code := range idx.Get(r.code).Codes() {
		if code == r.code {
			continue
		}
		if c, err := ResolveCard(r.meta, code, r.taboo, r.cus); err == nil {
			return c
		}
	}
	return nil
}

func (r relationResolver) many(idx metadata.Index) []*card.Card {
	codes := idx.Get(r.code).Codes()
	if len(codes) == 0 {
		return nil
	}
	cards := make([]*card.Card, 0, len(codes))
	for _, code := range codes {
		if code == r.code {
			continue
		}
		c, err := ResolveCard(r.meta, code, r.taboo, r.cus)
		if err != nil {
			continue
		}
		cards = append(cards, c)
	}
	if len(cards) == 0 {
		return nil
	}
	SortByName(cards, r.collator)
	return cards
}

// SortByName orders cards by name with collator, falling back to code order.
func SortByName(cards []*card.Card, collator Collator) {
	sort.SliceStable(cards, func(i, j int) bool {
		if n := compareNames(collator, cards[i].Name, cards[j].Name); n != 0 {
			return n < 0
		}
		return cards[i].Code < cards[j].Code
	})
}
