package card

// Text change modes of a customization option.
const (
	TextReplace = "replace"
	TextInsert  = "insert"
	TextAppend  = "append"
)

// Choice kinds of a customization option.
const (
	ChoiceTrait      = "choose_trait"
	ChoiceRemoveSlot = "remove_slot"
	ChoiceCard       = "choose_card"
	ChoiceSkill      = "choose_skill"
)

// CustomizationOption is one purchasable upgrade of a customizable card.
type CustomizationOption struct {
	XP           int    `json:"xp"`
	RealTraits   string `json:"real_traits,omitempty"`
	RealSlot     string `json:"real_slot,omitempty"`
	HealthChange int    `json:"health_change,omitempty"`
	SanityChange int    `json:"sanity_change,omitempty"`
	CostChange   int    `json:"cost,omitempty"`
	DeckLimit    *int   `json:"deck_limit,omitempty"`
	TextChange   string `json:"text_change,omitempty"`
	TextEdit     string `json:"text_edit,omitempty"`
	Position     int    `json:"position,omitempty"`
	Choice       string `json:"choice,omitempty"`
	Quantity     int    `json:"quantity,omitempty"`
}

// Customization is the player's purchase state for one customization option.
type Customization struct {
	Index      int
	XPSpent    int
	Selections []string
}

// Unlocked reports whether enough experience was spent to apply option.
func (c Customization) Unlocked(option CustomizationOption) bool {
	return c.XPSpent >= option.XP
}

// Taboo is a partial patch applied to a card for one taboo set.
// Nil fields leave the card untouched.
type Taboo struct {
	Code                 string                `json:"code"`
	TabooSetID           int                   `json:"taboo_set_id"`
	XP                   *int                  `json:"xp,omitempty"`
	Text                 *string               `json:"real_text,omitempty"`
	Exceptional          *bool                 `json:"exceptional,omitempty"`
	DeckLimit            *int                  `json:"deck_limit,omitempty"`
	DeckOptions          []DeckOption          `json:"deck_options,omitempty"`
	DeckRequirements     *DeckRequirements     `json:"deck_requirements,omitempty"`
	CustomizationOptions []CustomizationOption `json:"customization_options,omitempty"`
	CustomizationText    *string               `json:"customization_text,omitempty"`
}
