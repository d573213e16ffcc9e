package filter

import (
	"strings"

	"github.com/arcanaland/deckwright/internal/card"
	"github.com/arcanaland/deckwright/internal/metadata"
)

// Selections are the player's deck-creation choices keyed by deck meta key
// (faction_selected, option_selected, faction_1, ...).
type Selections map[string]string

// Context carries the inputs a field needs besides the card itself.
type Context struct {
	Selections Selections
	Lookup     *metadata.LookupTables
}

// Verdict is the outcome of matching a card against an option list.
type Verdict int

const (
	// Skip means no option decided; the card is not admitted.
	Skip Verdict = iota
	// Admit means a positive option matched.
	Admit
	// Reject means a negated option matched.
	Reject
)

func (v Verdict) String() string {
	switch v {
	case Admit:
		return "admit"
	case Reject:
		return "reject"
	default:
		return "skip"
	}
}

// Match records which option decided a card. Index is -1 when none did.
type Match struct {
	Index   int
	Verdict Verdict
}

// Admitted reports whether the card is a legal inclusion.
func (m Match) Admitted() bool {
	return m.Verdict == Admit
}

// Interpreter evaluates an ordered deck option list against cards.
type Interpreter struct {
	options []CompiledOption
	ctx     Context
}

// NewInterpreter compiles options for evaluation under ctx.
func NewInterpreter(options []card.DeckOption, ctx Context) *Interpreter {
	return &Interpreter{options: Compile(options), ctx: ctx}
}

// Options returns the compiled options in list order.
func (in *Interpreter) Options() []CompiledOption {
	return in.options
}

// Match walks the options in order; the first option whose fields all accept
// the card decides. A positive option admits, a negated option rejects.
// Virtual and deck-size bookkeeping options never decide.
func (in *Interpreter) Match(c *card.Card) Match {
	m := cardMatcher{card: c, ctx: in.ctx}
	for _, o := range in.options {
		if o.Option.Virtual || o.Option.IsBookkeeping() {
			continue
		}
		if !o.Matches(m) {
			continue
		}
		if o.Option.Not {
			return Match{Index: o.Index, Verdict: Reject}
		}
		return Match{Index: o.Index, Verdict: Admit}
	}
	return Match{Index: -1, Verdict: Skip}
}

// MatchesOption reports whether the fields of option index accept the card,
// ignoring negation and virtual flags. Used for deck-level rules.
func (in *Interpreter) MatchesOption(index int, c *card.Card) bool {
	if index < 0 || index >= len(in.options) {
		return false
	}
	return in.options[index].Matches(cardMatcher{card: c, ctx: in.ctx})
}

// SelectedChoice returns the option_select choice picked for option index.
// found is false when the option has no option_select or no selection was
// made; valid is false when a selection names an unknown choice.
func (in *Interpreter) SelectedChoice(index int) (choice CompiledOption, found, valid bool) {
	if index < 0 || index >= len(in.options) {
		return CompiledOption{}, false, true
	}
	for _, f := range in.options[index].Fields {
		sel, ok := f.(OptionSelectField)
		if !ok {
			continue
		}
		id := in.ctx.Selections[sel.Key]
		if id == "" {
			return CompiledOption{}, false, true
		}
		for _, c := range sel.Choices {
			if c.Option.ID == id {
				return c, true, true
			}
		}
		return CompiledOption{}, true, false
	}
	return CompiledOption{}, false, true
}

// cardMatcher is the FieldVisitor deciding whether one card passes a field.
type cardMatcher struct {
	card *card.Card
	ctx  Context
}

func (m cardMatcher) VisitFaction(f FactionField) bool {
	for _, faction := range m.card.Factions() {
		if containsFold(f.Factions, faction) {
			return true
		}
	}
	return false
}

// VisitFactionSelect matches the selected faction, or any listed faction
// while nothing is selected. A selection outside the list matches nothing.
func (m cardMatcher) VisitFactionSelect(f FactionSelectField) bool {
	selected := m.ctx.Selections[f.Key]
	if selected == "" {
		return m.VisitFaction(FactionField{Factions: f.Factions})
	}
	if !containsFold(f.Factions, selected) {
		return false
	}
	return m.VisitFaction(FactionField{Factions: []string{selected}})
}

func (m cardMatcher) VisitTrait(f TraitField) bool {
	for _, t := range f.Traits {
		if m.card.HasTrait(t) {
			return true
		}
	}
	return false
}

func (m cardMatcher) VisitType(f TypeField) bool {
	return containsFold(f.Types, m.card.TypeCode)
}

func (m cardMatcher) VisitSubtype(f SubtypeField) bool {
	return containsFold(f.Subtypes, m.card.SubtypeCode)
}

func (m cardMatcher) VisitLevel(f LevelField) bool {
	level, ok := m.card.Level()
	return ok && f.Range.Contains(level)
}

func (m cardMatcher) VisitTag(f TagField) bool {
	for _, tag := range m.card.TagList() {
		if containsFold(f.Tags, tag) {
			return true
		}
	}
	return false
}

func (m cardMatcher) VisitUses(f UsesField) bool {
	for _, kind := range f.Uses {
		if m.ctx.Lookup.HasUses(strings.ToLower(kind), m.card.Code) {
			return true
		}
	}
	return false
}

func (m cardMatcher) VisitSlot(f SlotField) bool {
	for _, slot := range m.card.SlotList() {
		if containsFold(f.Slots, slot) {
			return true
		}
	}
	return false
}

func (m cardMatcher) VisitText(f TextField) bool {
	for _, re := range f.Patterns {
		if re.MatchString(m.card.Text) {
			return true
		}
	}
	return false
}

func (m cardMatcher) VisitPermanent(PermanentField) bool {
	return m.card.Permanent
}

// VisitOptionSelect matches against the selected choice, or any choice while
// nothing is selected.
func (m cardMatcher) VisitOptionSelect(f OptionSelectField) bool {
	selected := m.ctx.Selections[f.Key]
	for _, choice := range f.Choices {
		if selected != "" && choice.Option.ID != selected {
			continue
		}
		if choice.Matches(m) {
			return true
		}
	}
	return false
}

func (m cardMatcher) VisitAtLeast(AtLeastField) bool {
	return true
}
