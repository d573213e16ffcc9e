// Package validator checks resolved decks against deckbuilding rules. Every
// check appends findings and none stops the battery, so a single pass
// reports everything wrong with a deck.
package validator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arcanaland/deckwright/internal/card"
	"github.com/arcanaland/deckwright/internal/deck"
	"github.com/arcanaland/deckwright/internal/filter"
	"github.com/arcanaland/deckwright/internal/metadata"
)

// ProblemType classifies a validation finding.
type ProblemType string

const (
	InvalidInvestigator  ProblemType = "INVALID_INVESTIGATOR"
	TooFewCards          ProblemType = "TOO_FEW_CARDS"
	TooManyCards         ProblemType = "TOO_MANY_CARDS"
	Forbidden            ProblemType = "FORBIDDEN"
	InvalidDeckOption    ProblemType = "INVALID_DECK_OPTION"
	MissingRequiredCards ProblemType = "MISSING_REQUIRED_CARDS"
	TooMuchXP            ProblemType = "TOO_MUCH_XP"
	InvalidCardCount     ProblemType = "INVALID_CARD_COUNT"
)

// Problem targets.
const (
	TargetSlots      = "slots"
	TargetExtraSlots = "extraSlots"
)

// Problem is one deckbuilding rule violation.
type Problem struct {
	Type   ProblemType
	Target string
	// Cards lists the offending card codes, if any.
	Cards []string
	// Option names the deck option involved, if any.
	Option  string
	Got     int
	Want    int
	Message string
}

// Result is the outcome of validating a deck. Warnings report data issues
// that are not rule violations, such as cards dropped during resolution.
type Result struct {
	Problems []Problem
	Warnings []string
}

// Valid reports whether no problem was found.
func (r Result) Valid() bool {
	return len(r.Problems) == 0
}

// Of returns the problems of type t.
func (r Result) Of(t ProblemType) []Problem {
	var out []Problem
	for _, p := range r.Problems {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

type Validator struct {
	Deck     *deck.ResolvedDeck
	Metadata *metadata.Metadata
	Lookup   *metadata.LookupTables
	Results  Result

	investigator *card.Card
	interpreter  *filter.Interpreter
}

func NewValidator(rd *deck.ResolvedDeck, meta *metadata.Metadata, lookup *metadata.LookupTables) *Validator {
	return &Validator{
		Deck:     rd,
		Metadata: meta,
		Lookup:   lookup,
	}
}

// ValidateDeck runs the full battery against rd.
func ValidateDeck(rd *deck.ResolvedDeck, meta *metadata.Metadata, lookup *metadata.LookupTables) Result {
	return NewValidator(rd, meta, lookup).Validate()
}

// Validate runs every check and returns the collected findings. Calling it
// again starts from an empty result.
func (v *Validator) Validate() Result {
	v.Results = Result{}
	v.investigator = v.Deck.InvestigatorBack.Card
	v.interpreter = filter.NewInterpreter(v.investigator.DeckOptions, filter.Context{
		Selections: v.Deck.Meta.Selections,
		Lookup:     v.Lookup,
	})

	v.validateInvestigator()
	v.validateDeckSize()
	v.validateExtraDeckSize()
	v.validateAccess()
	v.validateExtraAccess()
	v.validateSelections()
	v.validateOptionLimits()
	v.validateAtLeast()
	v.validateRequiredCards()
	v.validateExperience()
	v.validateDeckLimits()
	v.validateOmissions()

	return v.Results
}

func (v *Validator) addProblem(p Problem) {
	if p.Target == "" {
		p.Target = TargetSlots
	}
	v.Results.Problems = append(v.Results.Problems, p)
}

func (v *Validator) validateInvestigator() {
	if v.investigator.TypeCode != card.TypeInvestigator {
		v.addProblem(Problem{
			Type:    InvalidInvestigator,
			Cards:   []string{v.investigator.Code},
			Message: fmt.Sprintf("%s is not an investigator", v.investigator.Name),
		})
	}
}

// RequiredDeckSize returns the number of cards the main deck must hold:
// the selected deck_size_select value, the first offered value when the
// selection is missing or invalid, or the investigator's fixed size.
func RequiredDeckSize(rd *deck.ResolvedDeck) int {
	investigator := rd.InvestigatorBack.Card
	for _, o := range investigator.DeckOptions {
		sizes := o.DeckSizes()
		if len(sizes) == 0 {
			continue
		}
		selected := selectedDeckSize(rd, o)
		for _, size := range sizes {
			if size == selected {
				return size
			}
		}
		return sizes[0]
	}
	if investigator.DeckRequirements != nil {
		return investigator.DeckRequirements.Size
	}
	return 0
}

func selectedDeckSize(rd *deck.ResolvedDeck, o card.DeckOption) int {
	if s, ok := rd.Meta.Selections[o.SelectionKey()]; ok {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return rd.Meta.DeckSizeSelected
}

func (v *Validator) validateDeckSize() {
	want := RequiredDeckSize(v.Deck)
	got := v.Deck.DeckSize
	switch {
	case got < want:
		v.addProblem(Problem{Type: TooFewCards, Got: got, Want: want,
			Message: fmt.Sprintf("deck has %d cards, %d required", got, want)})
	case got > want:
		v.addProblem(Problem{Type: TooManyCards, Got: got, Want: want,
			Message: fmt.Sprintf("deck has %d cards, %d allowed", got, want)})
	}
}

func (v *Validator) validateExtraDeckSize() {
	req := v.investigator.SideDeckRequirements
	if req == nil {
		return
	}
	want := req.Size
	got := v.Deck.ExtraSlots.Total()
	switch {
	case got < want:
		v.addProblem(Problem{Type: TooFewCards, Target: TargetExtraSlots, Got: got, Want: want,
			Message: fmt.Sprintf("extra deck has %d cards, %d required", got, want)})
	case got > want:
		v.addProblem(Problem{Type: TooManyCards, Target: TargetExtraSlots, Got: got, Want: want,
			Message: fmt.Sprintf("extra deck has %d cards, %d allowed", got, want)})
	}
}

// validateAccess reports main-slot cards the investigator may not include.
// Copies fully covered by ignore_deck_limit_slots are campaign rewards and
// are exempt.
func (v *Validator) validateAccess() {
	access := filter.FilterDeckAccess(v.investigator, v.Deck.AccessOptions(v.Metadata, v.Lookup, false))

	var forbidden []string
	for _, code := range v.Deck.Slots.Codes() {
		if v.Deck.IgnoreDeckLimitSlots[code] >= v.Deck.Slots[code] {
			continue
		}
		if !access(v.Deck.Cards.Slots[code].Card) {
			forbidden = append(forbidden, code)
		}
	}
	if len(forbidden) > 0 {
		v.addProblem(Problem{
			Type:    Forbidden,
			Cards:   forbidden,
			Message: "deck contains cards the investigator cannot include: " + v.names(forbidden),
		})
	}
}

func (v *Validator) validateExtraAccess() {
	if len(v.Deck.ExtraSlots) == 0 {
		return
	}
	var access filter.Filter = func(*card.Card) bool { return false }
	if v.investigator.SideDeckOptions != nil {
		access = filter.FilterDeckAccess(v.investigator, v.Deck.AccessOptions(v.Metadata, v.Lookup, true))
	}

	var forbidden []string
	for _, code := range v.Deck.ExtraSlots.Codes() {
		if !access(v.Deck.Cards.ExtraSlots[code]) {
			forbidden = append(forbidden, code)
		}
	}
	if len(forbidden) > 0 {
		v.addProblem(Problem{
			Type:    Forbidden,
			Target:  TargetExtraSlots,
			Cards:   forbidden,
			Message: "extra deck contains cards the investigator cannot include: " + v.names(forbidden),
		})
	}
}

// validateSelections reports faction, option and deck size choices that do
// not name one of the offered values.
func (v *Validator) validateSelections() {
	selections := v.Deck.Meta.Selections
	for _, o := range v.interpreter.Options() {
		opt := o.Option
		label := opt.Label(o.Index)

		if len(opt.FactionSelect) > 0 {
			if sel := selections[opt.SelectionKey()]; sel != "" && !contains(opt.FactionSelect, sel) {
				v.addProblem(Problem{Type: InvalidDeckOption, Option: label,
					Message: fmt.Sprintf("%s: %q is not a selectable faction", label, sel)})
			}
		}
		if len(opt.OptionSelect) > 0 {
			if _, found, valid := v.interpreter.SelectedChoice(o.Index); found && !valid {
				v.addProblem(Problem{Type: InvalidDeckOption, Option: label,
					Message: fmt.Sprintf("%s: %q is not a selectable option", label, selections[opt.SelectionKey()])})
			}
		}
		if sizes := opt.DeckSizes(); len(sizes) > 0 {
			if selected := selectedDeckSize(v.Deck, opt); selected != 0 && !containsInt(sizes, selected) {
				v.addProblem(Problem{Type: InvalidDeckOption, Option: label, Got: selected,
					Message: fmt.Sprintf("%s: %d is not a selectable deck size", label, selected)})
			}
		}
	}
}

// countable reports whether a main-slot card participates in deck option
// bookkeeping. Weaknesses and signature cards never do.
func countable(c *card.Card) bool {
	return !c.IsWeakness() && !c.IsSignature()
}

func (v *Validator) countedQuantity(code string) int {
	return max(0, v.Deck.Slots[code]-v.Deck.IgnoreDeckLimitSlots[code])
}

// validateOptionLimits counts copies per deciding option and compares them
// with the option's limit, or the selected choice's limit when it sets one.
func (v *Validator) validateOptionLimits() {
	counts := make(map[int]int)
	cards := make(map[int][]string)
	for _, code := range v.Deck.Slots.Codes() {
		c := v.Deck.Cards.Slots[code].Card
		qty := v.countedQuantity(code)
		if !countable(c) || qty == 0 {
			continue
		}
		m := v.interpreter.Match(c)
		if !m.Admitted() {
			continue
		}
		counts[m.Index] += qty
		cards[m.Index] = append(cards[m.Index], code)
	}

	for _, o := range v.interpreter.Options() {
		limit := o.Option.Limit
		if choice, found, valid := v.interpreter.SelectedChoice(o.Index); found && valid && choice.Option.Limit > 0 {
			limit = choice.Option.Limit
		}
		if limit <= 0 || counts[o.Index] <= limit {
			continue
		}
		label := o.Option.Label(o.Index)
		msg := o.Option.Error
		if msg == "" {
			msg = fmt.Sprintf("%s: %d cards, at most %d allowed", label, counts[o.Index], limit)
		}
		v.addProblem(Problem{
			Type:    InvalidDeckOption,
			Cards:   cards[o.Index],
			Option:  label,
			Got:     counts[o.Index],
			Want:    limit,
			Message: msg,
		})
	}
}

// validateAtLeast checks every option carrying an atleast rule against all
// deck cards its fields match, virtual options included. Neutral does not
// count as a faction.
func (v *Validator) validateAtLeast() {
	for _, o := range v.interpreter.Options() {
		rule := o.Option.AtLeast
		if rule == nil {
			continue
		}
		groups := make(map[string]int)
		for _, code := range v.Deck.Slots.Codes() {
			c := v.Deck.Cards.Slots[code].Card
			qty := v.countedQuantity(code)
			if !countable(c) || qty == 0 || !v.interpreter.MatchesOption(o.Index, c) {
				continue
			}
			if rule.ByType() {
				groups[c.TypeCode] += qty
				continue
			}
			for _, f := range c.Factions() {
				if f != card.FactionNeutral {
					groups[f] += qty
				}
			}
		}

		wantGroups, perGroup := rule.Distinct()
		satisfied := 0
		for _, n := range groups {
			if n >= perGroup {
				satisfied++
			}
		}
		if satisfied >= wantGroups {
			continue
		}

		label := o.Option.Label(o.Index)
		kind := "factions"
		if rule.ByType() {
			kind = "card types"
		}
		msg := o.Option.Error
		if msg == "" {
			msg = fmt.Sprintf("%s: at least %d %s with %d or more cards each, found %d", label, wantGroups, kind, perGroup, satisfied)
		}
		v.addProblem(Problem{
			Type:    InvalidDeckOption,
			Option:  label,
			Got:     satisfied,
			Want:    wantGroups,
			Message: msg,
		})
	}
}

// validateRequiredCards checks deck_requirements.card and the investigator's
// required-card relations. A requirement is met by the card itself, one of
// its listed alternatives or a replacement printing.
func (v *Validator) validateRequiredCards() {
	requirements := make(map[string]map[string]struct{})
	addAlt := func(code, alt string) {
		if requirements[code] == nil {
			requirements[code] = map[string]struct{}{code: {}}
		}
		requirements[code][alt] = struct{}{}
	}
	if req := v.investigator.DeckRequirements; req != nil {
		for code, alternatives := range req.Card {
			addAlt(code, code)
			for alt := range alternatives {
				addAlt(code, alt)
			}
		}
	}
	if rel := v.Deck.InvestigatorBack.Relations; rel != nil {
		for _, c := range rel.RequiredCards {
			addAlt(c.Code, c.Code)
		}
	}

	codes := make([]string, 0, len(requirements))
	for code := range requirements {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var missing []string
	for _, code := range codes {
		have := 0
		for alt := range requirements[code] {
			have += v.Deck.Slots[alt]
			for _, r := range v.replacements(alt) {
				have += v.Deck.Slots[r]
			}
		}
		if have < v.requiredQuantity(code) {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		v.addProblem(Problem{
			Type:    MissingRequiredCards,
			Cards:   missing,
			Message: "deck is missing required cards: " + v.names(missing),
		})
	}
}

func (v *Validator) replacements(code string) []string {
	if v.Lookup == nil {
		return nil
	}
	return v.Lookup.Relations.Replacement.Get(code).Codes()
}

func (v *Validator) requiredQuantity(code string) int {
	c, ok := v.Metadata.Card(code)
	if !ok || c.Quantity <= 0 {
		return 1
	}
	return min(c.Quantity, c.Limit())
}

// validateExperience applies to upgraded decks with an experience budget.
func (v *Validator) validateExperience() {
	d := v.Deck.Deck
	if !d.IsUpgrade() || d.XP == nil {
		return
	}
	available := *d.XP + d.XPAdjustment
	if v.Deck.XPRequired > available {
		v.addProblem(Problem{
			Type:    TooMuchXP,
			Got:     v.Deck.XPRequired,
			Want:    available,
			Message: fmt.Sprintf("deck spends %d experience, %d available", v.Deck.XPRequired, available),
		})
	}
}

// validateDeckLimits groups copies by name and level, so reprints and myriad
// printings share one limit. Ignored copies do not count; a sealed list caps
// the limit at the sealed quantity.
func (v *Validator) validateDeckLimits() {
	type group struct {
		codes []string
		count int
		limit int
	}
	groups := make(map[string]*group)
	var keys []string

	for _, code := range v.Deck.Slots.Codes() {
		c := v.Deck.Cards.Slots[code].Card
		level, _ := c.Level()
		key := c.RealName + "\x00" + strconv.Itoa(level)
		g, ok := groups[key]
		if !ok {
			g = &group{limit: c.Limit()}
			groups[key] = g
			keys = append(keys, key)
		}
		g.codes = append(g.codes, code)
		g.count += v.countedQuantity(code)
		g.limit = min(g.limit, c.Limit())
	}

	sealed := v.Deck.Meta.Sealed
	for _, key := range keys {
		g := groups[key]
		limit := g.limit
		if sealed != nil {
			limit = min(limit, v.sealedCopies(g.codes))
		}
		if g.count <= limit {
			continue
		}
		v.addProblem(Problem{
			Type:    InvalidCardCount,
			Cards:   g.codes,
			Got:     g.count,
			Want:    limit,
			Message: fmt.Sprintf("%s: %d copies, at most %d allowed", v.names(g.codes), g.count, limit),
		})
	}
}

// sealedCopies sums the sealed quantities of codes and their reprints, the
// same printings filter.Sealed admits.
func (v *Validator) sealedCopies(codes []string) int {
	seen := make(map[string]struct{})
	owned := 0
	count := func(code string) {
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		owned += v.Deck.Meta.Sealed[code]
	}
	for _, code := range codes {
		count(code)
		for _, reprint := range filter.Reprints(v.Deck.Cards.Slots[code].Card, v.Lookup) {
			count(reprint)
		}
	}
	return owned
}

func (v *Validator) validateOmissions() {
	for _, code := range v.Deck.Omitted {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("card %s not found in the card database; dropped from deck", code))
	}
}

// names renders codes as card names for messages.
func (v *Validator) names(codes []string) string {
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		if c, ok := v.Deck.Cards.Slots[code]; ok {
			names = append(names, c.Card.Name)
		} else if c, ok := v.Deck.Cards.ExtraSlots[code]; ok {
			names = append(names, c.Name)
		} else if c, ok := v.Metadata.Card(code); ok {
			names = append(names, c.Name)
		} else {
			names = append(names, code)
		}
	}
	return strings.Join(names, ", ")
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

func containsInt(list []int, n int) bool {
	for _, item := range list {
		if item == n {
			return true
		}
	}
	return false
}
