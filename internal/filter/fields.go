package filter

import (
	"regexp"

	"github.com/arcanaland/deckwright/internal/card"
)

// Field is one constraint kind of a deck option. The set of kinds is closed:
// every kind has a method on FieldVisitor, so adding a kind breaks every
// visitor until it handles the new kind.
type Field interface {
	Accept(v FieldVisitor) bool
}

// FieldVisitor evaluates each field kind.
type FieldVisitor interface {
	VisitFaction(FactionField) bool
	VisitFactionSelect(FactionSelectField) bool
	VisitTrait(TraitField) bool
	VisitType(TypeField) bool
	VisitSubtype(SubtypeField) bool
	VisitLevel(LevelField) bool
	VisitTag(TagField) bool
	VisitUses(UsesField) bool
	VisitSlot(SlotField) bool
	VisitText(TextField) bool
	VisitPermanent(PermanentField) bool
	VisitOptionSelect(OptionSelectField) bool
	VisitAtLeast(AtLeastField) bool
}

type (
	FactionField       struct{ Factions []string }
	FactionSelectField struct {
		Key      string
		Factions []string
	}
	TraitField   struct{ Traits []string }
	TypeField    struct{ Types []string }
	SubtypeField struct{ Subtypes []string }
	LevelField   struct{ Range card.LevelRange }
	TagField     struct{ Tags []string }
	UsesField    struct{ Uses []string }
	SlotField    struct{ Slots []string }
	// TextField holds the option's text patterns; patterns that fail to
	// compile are dropped, and a field left without patterns matches nothing.
	TextField         struct{ Patterns []*regexp.Regexp }
	PermanentField    struct{}
	OptionSelectField struct {
		Key     string
		Choices []CompiledOption
	}
	// AtLeastField never gates a single card; the rule is checked against the
	// whole deck by the validator.
	AtLeastField struct{ AtLeast card.AtLeast }
)

func (f FactionField) Accept(v FieldVisitor) bool       { return v.VisitFaction(f) }
func (f FactionSelectField) Accept(v FieldVisitor) bool { return v.VisitFactionSelect(f) }
func (f TraitField) Accept(v FieldVisitor) bool         { return v.VisitTrait(f) }
func (f TypeField) Accept(v FieldVisitor) bool          { return v.VisitType(f) }
func (f SubtypeField) Accept(v FieldVisitor) bool       { return v.VisitSubtype(f) }
func (f LevelField) Accept(v FieldVisitor) bool         { return v.VisitLevel(f) }
func (f TagField) Accept(v FieldVisitor) bool           { return v.VisitTag(f) }
func (f UsesField) Accept(v FieldVisitor) bool          { return v.VisitUses(f) }
func (f SlotField) Accept(v FieldVisitor) bool          { return v.VisitSlot(f) }
func (f TextField) Accept(v FieldVisitor) bool          { return v.VisitText(f) }
func (f PermanentField) Accept(v FieldVisitor) bool     { return v.VisitPermanent(f) }
func (f OptionSelectField) Accept(v FieldVisitor) bool  { return v.VisitOptionSelect(f) }
func (f AtLeastField) Accept(v FieldVisitor) bool       { return v.VisitAtLeast(f) }

// CompiledOption is a deck option turned into its list of fields.
type CompiledOption struct {
	Index  int
	Option card.DeckOption
	Fields []Field
}

// Compile turns an option list into compiled options, preserving order.
func Compile(options []card.DeckOption) []CompiledOption {
	compiled := make([]CompiledOption, len(options))
	for i, o := range options {
		compiled[i] = compileOption(i, o)
	}
	return compiled
}

func compileOption(index int, o card.DeckOption) CompiledOption {
	var fields []Field
	if len(o.Faction) > 0 {
		fields = append(fields, FactionField{Factions: o.Faction})
	}
	if len(o.FactionSelect) > 0 {
		fields = append(fields, FactionSelectField{Key: o.SelectionKey(), Factions: o.FactionSelect})
	}
	if len(o.Trait) > 0 {
		fields = append(fields, TraitField{Traits: o.Trait})
	}
	if len(o.Type) > 0 {
		fields = append(fields, TypeField{Types: o.Type})
	}
	if len(o.Subtype) > 0 {
		fields = append(fields, SubtypeField{Subtypes: o.Subtype})
	}
	if o.Level != nil {
		fields = append(fields, LevelField{Range: *o.Level})
	}
	if len(o.Tag) > 0 {
		fields = append(fields, TagField{Tags: o.Tag})
	}
	if len(o.Uses) > 0 {
		fields = append(fields, UsesField{Uses: o.Uses})
	}
	if len(o.Slot) > 0 {
		fields = append(fields, SlotField{Slots: o.Slot})
	}
	if len(o.Text) > 0 {
		fields = append(fields, TextField{Patterns: compilePatterns(o.Text)})
	}
	if o.Permanent {
		fields = append(fields, PermanentField{})
	}
	if len(o.OptionSelect) > 0 {
		choices := make([]CompiledOption, len(o.OptionSelect))
		for i, choice := range o.OptionSelect {
			choices[i] = compileOption(i, choice)
		}
		fields = append(fields, OptionSelectField{Key: o.SelectionKey(), Choices: choices})
	}
	if o.AtLeast != nil {
		fields = append(fields, AtLeastField{AtLeast: *o.AtLeast})
	}
	return CompiledOption{Index: index, Option: o, Fields: fields}
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, p := range patterns {
		if re, err := regexp.Compile(p); err == nil {
			out = append(out, re)
		}
	}
	return out
}

// Matches reports whether every field of the option accepts the card for v.
// An option without fields matches everything.
func (o CompiledOption) Matches(v FieldVisitor) bool {
	for _, f := range o.Fields {
		if !f.Accept(v) {
			return false
		}
	}
	return true
}
