package card

import (
	"strings"
)

// Type codes used by deckbuilding rules.
const (
	TypeInvestigator = "investigator"
	TypeAsset        = "asset"
	TypeEvent        = "event"
	TypeSkill        = "skill"
	TypeStory        = "story"

	SubtypeWeakness      = "weakness"
	SubtypeBasicWeakness = "basicweakness"

	FactionNeutral = "neutral"
	FactionMythos  = "mythos"
)

// CostX is the printed cost value of an X-cost card.
const CostX = -2

// Card represents a player or encounter card as found in the card database.
// A resolved Card is a copy with taboo and customization overlays applied;
// the database value is never modified.
type Card struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	RealName     string `json:"real_name"`
	Subname      string `json:"subname,omitempty"`
	FactionCode  string `json:"faction_code"`
	Faction2Code string `json:"faction2_code,omitempty"`
	Faction3Code string `json:"faction3_code,omitempty"`
	TypeCode     string `json:"type_code"`
	SubtypeCode  string `json:"subtype_code,omitempty"`

	PackCode      string `json:"pack_code"`
	EncounterCode string `json:"encounter_code,omitempty"`
	Position      int    `json:"position,omitempty"`
	Quantity      int    `json:"quantity"`

	Cost *int `json:"cost,omitempty"`
	XP   *int `json:"xp,omitempty"`

	SkillWillpower int `json:"skill_willpower,omitempty"`
	SkillIntellect int `json:"skill_intellect,omitempty"`
	SkillCombat    int `json:"skill_combat,omitempty"`
	SkillAgility   int `json:"skill_agility,omitempty"`
	SkillWild      int `json:"skill_wild,omitempty"`

	Health *int `json:"health,omitempty"`
	Sanity *int `json:"sanity,omitempty"`

	Traits string `json:"real_traits,omitempty"` // "Item. Weapon. Firearm."
	Slot   string `json:"real_slot,omitempty"`   // "Hand. Arcane."
	Text   string `json:"real_text,omitempty"`
	Tags   string `json:"tags,omitempty"` // "hd.hh."

	DeckLimit            *int                  `json:"deck_limit,omitempty"`
	DeckOptions          []DeckOption          `json:"deck_options,omitempty"`
	DeckRequirements     *DeckRequirements     `json:"deck_requirements,omitempty"`
	SideDeckOptions      []DeckOption          `json:"side_deck_options,omitempty"`
	SideDeckRequirements *DeckRequirements     `json:"side_deck_requirements,omitempty"`
	Restrictions         *Restrictions         `json:"restrictions,omitempty"`
	CustomizationOptions []CustomizationOption `json:"customization_options,omitempty"`
	CustomizationText    string                `json:"customization_text,omitempty"`

	Permanent   bool  `json:"permanent,omitempty"`
	Myriad      bool  `json:"myriad,omitempty"`
	Exceptional bool  `json:"exceptional,omitempty"`
	DoubleSided bool  `json:"double_sided,omitempty"`
	Hidden      bool  `json:"hidden,omitempty"`
	IsUnique    bool  `json:"is_unique,omitempty"`
	Official    *bool `json:"official,omitempty"`

	BackLinkID      string `json:"back_link_id,omitempty"`
	DuplicateOfCode string `json:"duplicate_of_code,omitempty"`
	AlternateOfCode string `json:"alternate_of_code,omitempty"`
	BondedTo        string `json:"bonded_to,omitempty"`
	BondedCount     int    `json:"bonded_count,omitempty"`

	// Resolution state, set by the resolver.
	TabooSetID      *int                  `json:"taboo_set_id,omitempty"`
	TabooXP         int                   `json:"taboo_xp,omitempty"`
	CustomizationXP int                   `json:"customization_xp,omitempty"`
	Customizations  map[int]Customization `json:"-"`
}

// Factions returns the card's faction codes, primary first.
func (c *Card) Factions() []string {
	factions := []string{c.FactionCode}
	if c.Faction2Code != "" {
		factions = append(factions, c.Faction2Code)
	}
	if c.Faction3Code != "" {
		factions = append(factions, c.Faction3Code)
	}
	return factions
}

// HasFaction reports whether any of the card's factions equals faction.
func (c *Card) HasFaction(faction string) bool {
	for _, f := range c.Factions() {
		if f == faction {
			return true
		}
	}
	return false
}

// IsMulticlass reports whether the card belongs to more than one faction.
func (c *Card) IsMulticlass() bool {
	return c.Faction2Code != ""
}

// TraitList splits the trait string into individual traits.
func (c *Card) TraitList() []string {
	return splitList(c.Traits)
}

// HasTrait reports whether the card carries trait, ignoring case.
func (c *Card) HasTrait(trait string) bool {
	for _, t := range c.TraitList() {
		if strings.EqualFold(t, trait) {
			return true
		}
	}
	return false
}

// SlotList splits the slot string into individual slots.
func (c *Card) SlotList() []string {
	return splitList(c.Slot)
}

// TagList splits the tag string into individual tags.
func (c *Card) TagList() []string {
	return splitList(c.Tags)
}

// IsOfficial reports whether the card is part of the official card pool.
// Cards without the flag are official.
func (c *Card) IsOfficial() bool {
	return c.Official == nil || *c.Official
}

// IsWeakness reports whether the card is a basic or signature weakness.
func (c *Card) IsWeakness() bool {
	return c.SubtypeCode == SubtypeWeakness || c.SubtypeCode == SubtypeBasicWeakness
}

// IsBasicWeakness reports whether the card may be drawn as a random basic weakness.
func (c *Card) IsBasicWeakness() bool {
	return c.SubtypeCode == SubtypeBasicWeakness
}

// IsSignature reports whether the card is restricted to specific investigators.
func (c *Card) IsSignature() bool {
	return c.Restrictions != nil && len(c.Restrictions.Investigator) > 0
}

// IsSpecial reports whether the card is exempt from deck size accounting:
// weaknesses, signatures, permanents, story and encounter cards.
func (c *Card) IsSpecial() bool {
	return c.IsWeakness() ||
		c.IsSignature() ||
		c.Permanent ||
		c.EncounterCode != "" ||
		c.TypeCode == TypeStory ||
		c.XP == nil
}

// IsCustomizable reports whether the card has customization options.
func (c *Card) IsCustomizable() bool {
	return len(c.CustomizationOptions) > 0
}

// Level returns the card's deckbuilding level and whether it has one.
// Customizable cards count half their spent experience, rounded up.
func (c *Card) Level() (int, bool) {
	if c.IsCustomizable() {
		return (c.CustomizationXP + 1) / 2, true
	}
	if c.XP == nil {
		return 0, false
	}
	return *c.XP, true
}

// XPCost returns the experience cost of a single copy, taboo and exceptional aware.
// Customization experience is not included.
func (c *Card) XPCost() int {
	if c.XP == nil {
		return 0
	}
	xp := *c.XP + c.TabooXP
	if c.Exceptional {
		xp *= 2
	}
	if xp < 0 {
		return 0
	}
	return xp
}

// Limit returns the number of copies a deck may contain. Cards without an
// explicit deck limit default to two.
func (c *Card) Limit() int {
	if c.DeckLimit != nil {
		return *c.DeckLimit
	}
	return 2
}

// DisplayName returns the name and subname of the card.
func (c *Card) DisplayName() string {
	if c.Subname != "" {
		return c.Name + ": " + c.Subname
	}
	return c.Name
}

// splitList splits "A. B. C." and "A|B|C" style strings, trimming whitespace
// and empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == '|' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
