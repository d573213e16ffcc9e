package deck

import (
	"log/slog"
	"sort"

	"github.com/pkg/errors"

	"github.com/arcanaland/deckwright/internal/card"
	"github.com/arcanaland/deckwright/internal/filter"
	"github.com/arcanaland/deckwright/internal/metadata"
	"github.com/arcanaland/deckwright/internal/resolver"
)

// ErrNoInvestigator is returned when the deck's investigator cannot be
// resolved. It signals a caller contract violation, not a data problem.
var ErrNoInvestigator = errors.New("deck investigator is not available")

// Deps are the read-only collaborators of deck resolution.
type Deps struct {
	Metadata *metadata.Metadata
	Lookup   *metadata.LookupTables
	// Logger receives omission notices at debug level. Nil discards.
	Logger *slog.Logger
}

// Cards are the resolved cards of each deck collection, keyed by code.
type Cards struct {
	Slots       map[string]*resolver.CardWithRelations
	SideSlots   map[string]*card.Card
	BondedSlots map[string]*card.Card
	ExtraSlots  map[string]*card.Card
	ExileSlots  map[string]*card.Card
}

// FanMadeData gathers unofficial content referenced by a deck.
type FanMadeData struct {
	Cards  map[string]*card.Card
	Packs  map[string]*metadata.Pack
	Cycles map[string]*metadata.Cycle
}

// ResolvedDeck is a deck with every slot resolved to concrete cards and its
// derived numbers computed. It is rebuilt on every Resolve call.
type ResolvedDeck struct {
	Deck       *Deck
	Meta       Meta
	TabooSetID *int

	InvestigatorFront *resolver.CardWithRelations
	InvestigatorBack  *resolver.CardWithRelations

	Cards Cards

	// Quantities of the resolved entries of each collection. Codes that
	// failed to resolve are absent.
	Slots                Slots
	SideSlots            Slots
	BondedSlots          Slots
	ExtraSlots           Slots
	ExileSlots           Slots
	IgnoreDeckLimitSlots Slots

	// DeckSize counts main-slot cards toward the required size.
	DeckSize int
	// DeckSizeTotal counts every main and extra slot copy.
	DeckSizeTotal int
	// XPRequired is the experience cost of the main and extra slots,
	// customizations included.
	XPRequired int

	Charts      Charts
	FanMadeData *FanMadeData

	// Omitted lists codes dropped because they could not be resolved.
	Omitted []string
}

// InvestigatorCodes returns the deck's investigator code and its front and
// back codes, deduplicated.
func (rd *ResolvedDeck) InvestigatorCodes() []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, code := range []string{rd.Deck.InvestigatorCode, rd.InvestigatorFront.Card.Code, rd.InvestigatorBack.Card.Code} {
		if _, ok := seen[code]; ok || code == "" {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}

// AccessOptions returns the access filter options for this deck. extra
// selects the extra deck rules.
func (rd *ResolvedDeck) AccessOptions(meta *metadata.Metadata, lookup *metadata.LookupTables, extra bool) filter.AccessOptions {
	return filter.AccessOptions{
		Selections:        rd.Meta.Selections,
		Metadata:          meta,
		Lookup:            lookup,
		InvestigatorCodes: rd.InvestigatorCodes(),
		CardPool:          rd.Meta.CardPool,
		Sealed:            rd.Meta.Sealed,
		ExtraDeck:         extra,
	}
}

// Resolve aggregates d into a ResolvedDeck. Slots referencing unknown cards
// are dropped and listed in Omitted. collator orders presentation lists only.
func Resolve(deps Deps, collator resolver.Collator, d *Deck) (*ResolvedDeck, error) {
	if deps.Metadata == nil || d == nil {
		return nil, ErrNoInvestigator
	}
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	meta, err := ParseMeta(d.Meta)
	if err != nil {
		log.Debug("ignoring deck meta", "deck", d.ID, "error", err)
	}

	a := &aggregator{
		deps:     deps,
		collator: collator,
		log:      log.With("deck", string(d.ID)),
		meta:     meta,
		taboo:    d.TabooID,
		charts:   newChartBuilder(),
		myriad:   make(map[string]struct{}),
		bonded:   make(map[string]*card.Card),
		omitted:  make(map[string]struct{}),
	}

	rd := &ResolvedDeck{
		Deck:       d,
		Meta:       meta,
		TabooSetID: d.TabooID,
		Cards: Cards{
			Slots:       make(map[string]*resolver.CardWithRelations),
			SideSlots:   make(map[string]*card.Card),
			BondedSlots: make(map[string]*card.Card),
			ExtraSlots:  make(map[string]*card.Card),
			ExileSlots:  make(map[string]*card.Card),
		},
		Slots:                Slots{},
		SideSlots:            Slots{},
		BondedSlots:          Slots{},
		ExtraSlots:           Slots{},
		ExileSlots:           Slots{},
		IgnoreDeckLimitSlots: Slots{},
	}

	if err := a.investigators(rd, d); err != nil {
		return nil, err
	}

	for code, qty := range d.IgnoreDeckLimitSlots {
		if qty > 0 {
			rd.IgnoreDeckLimitSlots[code] = qty
		}
	}

	a.mainSlots(rd, d.Slots)
	a.plainSlots(d.SideSlots, rd.Cards.SideSlots, rd.SideSlots)
	a.plainSlots(d.ExileSlots(), rd.Cards.ExileSlots, rd.ExileSlots)
	a.plainSlots(meta.ExtraDeck, rd.Cards.ExtraSlots, rd.ExtraSlots)
	for _, code := range rd.ExtraSlots.Codes() {
		qty := rd.ExtraSlots[code]
		rd.DeckSizeTotal += qty
		rd.XPRequired += a.xp(rd.Cards.ExtraSlots[code], qty)
	}
	a.bondedSlots(rd)

	rd.Charts = a.charts.build(collator)
	rd.FanMadeData = a.fanMade
	rd.Omitted = make([]string, 0, len(a.omitted))
	for code := range a.omitted {
		rd.Omitted = append(rd.Omitted, code)
	}
	sort.Strings(rd.Omitted)
	return rd, nil
}

type aggregator struct {
	deps     Deps
	collator resolver.Collator
	log      *slog.Logger
	meta     Meta
	taboo    *int

	charts  *chartBuilder
	myriad  map[string]struct{}
	bonded  map[string]*card.Card
	omitted map[string]struct{}
	fanMade *FanMadeData
}

func (a *aggregator) resolve(code string, withRelations bool) (*resolver.CardWithRelations, bool) {
	c, err := resolver.ResolveCardWithRelations(a.deps.Metadata, a.deps.Lookup, a.collator, resolver.Request{
		Code:           code,
		TabooSetID:     a.taboo,
		Customizations: a.meta.Customizations,
		WithRelations:  withRelations,
	})
	if err != nil {
		a.log.Debug("dropping unresolved slot", "code", code, "error", err)
		a.omitted[code] = struct{}{}
		return nil, false
	}
	a.noteFanMade(c.Card)
	return c, true
}

func (a *aggregator) investigators(rd *ResolvedDeck, d *Deck) error {
	frontCode, backCode := d.InvestigatorCode, d.InvestigatorCode
	if a.meta.AlternateFront != "" {
		frontCode = a.meta.AlternateFront
	}
	if a.meta.AlternateBack != "" {
		backCode = a.meta.AlternateBack
	}

	front, ok := a.resolve(frontCode, true)
	if !ok {
		return errors.Wrap(ErrNoInvestigator, frontCode)
	}
	back := front
	if backCode != frontCode {
		if back, ok = a.resolve(backCode, true); !ok {
			return errors.Wrap(ErrNoInvestigator, backCode)
		}
	}
	rd.InvestigatorFront, rd.InvestigatorBack = front, back

	for _, side := range []*resolver.CardWithRelations{front, back} {
		if side.Relations != nil {
			a.collectBonded(side.Relations.Bonded)
		}
	}
	return nil
}

func (a *aggregator) mainSlots(rd *ResolvedDeck, slots Slots) {
	for _, code := range slots.Codes() {
		qty := slots[code]
		c, ok := a.resolve(code, true)
		if !ok {
			continue
		}
		rd.Cards.Slots[code] = c
		rd.Slots[code] = qty
		rd.DeckSizeTotal += qty

		if !c.Card.IsSpecial() {
			rd.DeckSize += max(0, qty-rd.IgnoreDeckLimitSlots[code])
		}
		rd.XPRequired += a.xp(c.Card, max(0, qty-rd.IgnoreDeckLimitSlots[code]))
		a.charts.add(c.Card, qty)
		if c.Relations != nil {
			a.collectBonded(c.Relations.Bonded)
		}
	}
}

// plainSlots resolves a collection without relations.
func (a *aggregator) plainSlots(slots Slots, cards map[string]*card.Card, quantities Slots) {
	for _, code := range slots.Codes() {
		c, ok := a.resolve(code, false)
		if !ok {
			continue
		}
		cards[code] = c.Card
		quantities[code] = slots[code]
	}
}

// xp returns the experience cost of qty copies. Myriad cards are paid once
// per name across the whole deck.
func (a *aggregator) xp(c *card.Card, qty int) int {
	if qty <= 0 {
		return 0
	}
	cost := c.XPCost()
	if c.Myriad {
		if _, seen := a.myriad[c.RealName]; seen {
			cost = 0
		} else {
			a.myriad[c.RealName] = struct{}{}
		}
	} else {
		cost *= qty
	}
	return cost + c.CustomizationXP
}

func (a *aggregator) collectBonded(cards []*card.Card) {
	for _, c := range cards {
		if c.Hidden {
			continue
		}
		a.bonded[c.Code] = c
	}
}

func (a *aggregator) bondedSlots(rd *ResolvedDeck) {
	for code, c := range a.bonded {
		if _, inDeck := rd.Slots[code]; inDeck {
			continue
		}
		qty := c.BondedCount
		if qty == 0 {
			qty = c.Quantity
		}
		rd.Cards.BondedSlots[code] = c
		rd.BondedSlots[code] = qty
		a.noteFanMade(c)
	}
}

func (a *aggregator) noteFanMade(c *card.Card) {
	if c.IsOfficial() {
		return
	}
	if a.fanMade == nil {
		a.fanMade = &FanMadeData{
			Cards:  make(map[string]*card.Card),
			Packs:  make(map[string]*metadata.Pack),
			Cycles: make(map[string]*metadata.Cycle),
		}
	}
	a.fanMade.Cards[c.Code] = c
	meta := a.deps.Metadata
	if pack, ok := meta.Packs[c.PackCode]; ok {
		a.fanMade.Packs[pack.Code] = pack
		if cycle, ok := meta.Cycles[pack.CycleCode]; ok {
			a.fanMade.Cycles[cycle.Code] = cycle
		}
	}
}
