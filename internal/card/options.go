package card

import "strconv"

// DeckOption is one rule of an investigator's deckbuilding access list.
// Filter fields within one option are combined with AND; options of a list
// are tried in order.
type DeckOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Error string `json:"error,omitempty"`

	Faction       []string    `json:"faction,omitempty"`
	FactionSelect []string    `json:"faction_select,omitempty"`
	Type          []string    `json:"type,omitempty"`
	Subtype       []string    `json:"subtype,omitempty"`
	Trait         []string    `json:"trait,omitempty"`
	Tag           []string    `json:"tag,omitempty"`
	Uses          []string    `json:"uses,omitempty"`
	Slot          []string    `json:"slot,omitempty"`
	Text          []string    `json:"text,omitempty"`
	Level         *LevelRange `json:"level,omitempty"`

	Limit          int          `json:"limit,omitempty"`
	AtLeast        *AtLeast     `json:"atleast,omitempty"`
	OptionSelect   []DeckOption `json:"option_select,omitempty"`
	DeckSizeSelect []string     `json:"deck_size_select,omitempty"`

	Not       bool `json:"not,omitempty"`
	Virtual   bool `json:"virtual,omitempty"`
	Permanent bool `json:"permanent,omitempty"`
}

// LevelRange is an inclusive level range.
type LevelRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether level lies within the range.
func (r LevelRange) Contains(level int) bool {
	return level >= r.Min && level <= r.Max
}

// AtLeast requires a deck to spread its cards over distinct factions or types.
//
// With Factions (or Types) set, at least that many distinct factions (types)
// must each contribute Min cards. With neither set, Min distinct factions
// must each contribute at least one card.
type AtLeast struct {
	Factions int `json:"factions,omitempty"`
	Types    int `json:"types,omitempty"`
	Min      int `json:"min"`
}

// Distinct returns the number of distinct groups required and the per-group
// minimum.
func (a AtLeast) Distinct() (groups, perGroup int) {
	switch {
	case a.Factions > 0:
		return a.Factions, a.Min
	case a.Types > 0:
		return a.Types, a.Min
	default:
		return a.Min, 1
	}
}

// ByType reports whether the rule counts card types instead of factions.
func (a AtLeast) ByType() bool {
	return a.Factions == 0 && a.Types > 0
}

// SelectionKey returns the deck meta key holding the player's choice for a
// faction_select or option_select option.
func (o DeckOption) SelectionKey() string {
	if o.ID != "" {
		return o.ID
	}
	switch {
	case len(o.FactionSelect) > 0:
		return "faction_selected"
	case len(o.OptionSelect) > 0:
		return "option_selected"
	case len(o.DeckSizeSelect) > 0:
		return "deck_size_selected"
	}
	return ""
}

// IsBookkeeping reports whether the option only carries a deck size choice.
func (o DeckOption) IsBookkeeping() bool {
	return len(o.DeckSizeSelect) > 0 && !o.HasFilters()
}

// HasFilters reports whether any card filter field is set.
func (o DeckOption) HasFilters() bool {
	return len(o.Faction) > 0 ||
		len(o.FactionSelect) > 0 ||
		len(o.Type) > 0 ||
		len(o.Subtype) > 0 ||
		len(o.Trait) > 0 ||
		len(o.Tag) > 0 ||
		len(o.Uses) > 0 ||
		len(o.Slot) > 0 ||
		len(o.Text) > 0 ||
		o.Level != nil ||
		o.Permanent ||
		len(o.OptionSelect) > 0 ||
		o.AtLeast != nil
}

// Label returns a human readable name for the option.
func (o DeckOption) Label(index int) string {
	switch {
	case o.Name != "":
		return o.Name
	case o.ID != "":
		return o.ID
	}
	return "option #" + strconv.Itoa(index+1)
}

// DeckSizes returns the parsed deck_size_select values, skipping malformed entries.
func (o DeckOption) DeckSizes() []int {
	var sizes []int
	for _, s := range o.DeckSizeSelect {
		if n, err := strconv.Atoi(s); err == nil {
			sizes = append(sizes, n)
		}
	}
	return sizes
}

// DeckRequirements describes an investigator's mandatory deck contents.
type DeckRequirements struct {
	Size int `json:"size"`
	// Card maps a required card code to the set of codes that satisfy it.
	Card   map[string]map[string]string `json:"card,omitempty"`
	Random []RandomRequirement          `json:"random,omitempty"`
}

// RandomRequirement asks for random cards, e.g. a basic weakness.
type RandomRequirement struct {
	Target string `json:"target"`
	Value  string `json:"value"`
}

// Restrictions limit which investigators may include a card.
type Restrictions struct {
	Investigator map[string]string `json:"investigator,omitempty"`
	Trait        []string          `json:"trait,omitempty"`
}

// AllowsInvestigator reports whether code is listed.
func (r *Restrictions) AllowsInvestigator(code string) bool {
	if r == nil {
		return false
	}
	_, ok := r.Investigator[code]
	return ok
}
