package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/deckwright/internal/deck"
	"github.com/arcanaland/deckwright/internal/resolver"
	"github.com/arcanaland/deckwright/internal/testutil"
)

func validate(t *testing.T, d *deck.Deck) Result {
	t.Helper()
	meta, lookup := testutil.Database()
	rd, err := deck.Resolve(deck.Deps{Metadata: meta, Lookup: lookup}, resolver.NewCollator("en"), d)
	require.NoError(t, err)
	return ValidateDeck(rd, meta, lookup)
}

// legalRoland is a 30 card Roland Banks deck with the required signature cards.
func legalRoland() *deck.Deck {
	return &deck.Deck{
		ID:               "roland",
		InvestigatorCode: testutil.Roland,
		Slots: deck.Slots{
			"01006": 1,
			"01007": 1,
			"01016": 2,
			"01017": 2,
			"01018": 2,
			"01022": 2,
			"02040": 2,
			"04155": 2,
			"08079": 2,
			"07009": 2,
			"07309": 1,
			"09022": 1,
			"01086": 2,
			"01088": 2,
			"01030": 2,
			"01039": 2,
			"05314": 2,
			"60402": 2,
		},
	}
}

func TestValidate_LegalDeck(t *testing.T) {
	result := validate(t, legalRoland())
	assert.True(t, result.Valid(), "%+v", result.Problems)
	assert.Empty(t, result.Warnings)
}

func TestValidate_Idempotent(t *testing.T) {
	meta, lookup := testutil.Database()
	rd, err := deck.Resolve(deck.Deps{Metadata: meta, Lookup: lookup}, nil, legalRoland())
	require.NoError(t, err)

	v := NewValidator(rd, meta, lookup)
	first := v.Validate()
	second := v.Validate()
	assert.Empty(t, first.Problems)
	assert.Empty(t, second.Problems)
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	d := legalRoland()
	delete(d.Slots, "01006")
	d.Slots["01044"] = 1
	d.Slots["01016"] = 3

	result := validate(t, d)
	assert.Len(t, result.Of(TooManyCards), 1)
	assert.Len(t, result.Of(Forbidden), 1)
	assert.Len(t, result.Of(MissingRequiredCards), 1)
	assert.Len(t, result.Of(InvalidCardCount), 1)
}

func TestValidate_DeckSize(t *testing.T) {
	d := legalRoland()
	d.Slots["01018"] = 1

	result := validate(t, d)
	require.Len(t, result.Problems, 1)
	p := result.Problems[0]
	assert.Equal(t, TooFewCards, p.Type)
	assert.Equal(t, TargetSlots, p.Target)
	assert.Equal(t, 29, p.Got)
	assert.Equal(t, 30, p.Want)
}

func TestValidate_SelectedDeckSize(t *testing.T) {
	d := &deck.Deck{
		InvestigatorCode: testutil.SizePicker,
		Slots:            deck.Slots{"01030": 2},
		Meta:             `{"deck_size_selected":"40"}`,
	}
	result := validate(t, d)
	require.Len(t, result.Of(TooFewCards), 1)
	assert.Equal(t, 40, result.Of(TooFewCards)[0].Want)
	assert.Empty(t, result.Of(InvalidDeckOption))

	d.Meta = `{"deck_size_selected":"45"}`
	result = validate(t, d)
	assert.Equal(t, 30, result.Of(TooFewCards)[0].Want, "an invalid choice falls back to the first size")
	require.Len(t, result.Of(InvalidDeckOption), 1)
	assert.Equal(t, 45, result.Of(InvalidDeckOption)[0].Got)
}

func TestValidate_Forbidden(t *testing.T) {
	d := legalRoland()
	d.Slots["01060"] = 1
	d.Slots["01042"] = 1
	d.Slots["01018"] = 0

	result := validate(t, d)
	forbidden := result.Of(Forbidden)
	require.Len(t, forbidden, 1)
	assert.Equal(t, []string{"01042", "01060"}, forbidden[0].Cards)
	assert.Contains(t, forbidden[0].Message, "Encyclopedia")
}

func TestValidate_IgnoredCampaignCardsSkipAccess(t *testing.T) {
	d := legalRoland()
	d.Slots["01060"] = 1
	d.IgnoreDeckLimitSlots = deck.Slots{"01060": 1}

	result := validate(t, d)
	assert.True(t, result.Valid(), "%+v", result.Problems)
}

func TestValidate_CardPool(t *testing.T) {
	d := legalRoland()
	d.Meta = `{"card_pool":"eoep"}`

	result := validate(t, d)
	forbidden := result.Of(Forbidden)
	require.Len(t, forbidden, 1)
	assert.Contains(t, forbidden[0].Cards, "01016")
}

func TestValidate_RequiredCards(t *testing.T) {
	d := legalRoland()
	delete(d.Slots, "01006")
	delete(d.Slots, "01007")

	result := validate(t, d)
	missing := result.Of(MissingRequiredCards)
	require.Len(t, missing, 1)
	assert.Equal(t, []string{"01006", "01007"}, missing[0].Cards)
}

func TestValidate_Experience(t *testing.T) {
	d := legalRoland()
	previous := 1
	d.PreviousDeck = &previous
	d.XP = testutil.Int(10)

	result := validate(t, d)
	xp := result.Of(TooMuchXP)
	require.Len(t, xp, 1)
	// Evidence! 2, Lightning Gun 10, Relic Hunter 12, Gumption 1
	assert.Equal(t, 25, xp[0].Got)
	assert.Equal(t, 10, xp[0].Want)

	d.XPAdjustment = 15
	assert.Empty(t, validate(t, d).Of(TooMuchXP))
}

func TestValidate_ExperienceOnlyForUpgrades(t *testing.T) {
	d := legalRoland()
	d.XP = testutil.Int(0)
	assert.Empty(t, validate(t, d).Of(TooMuchXP))
}

func TestValidate_DeckLimits(t *testing.T) {
	d := legalRoland()
	d.Slots["01016"] = 1
	d.Slots["60116"] = 2
	d.Slots["01018"] = 1

	result := validate(t, d)
	counts := result.Of(InvalidCardCount)
	require.Len(t, counts, 1, "reprints share one limit")
	assert.Equal(t, []string{"01016", "60116"}, counts[0].Cards)
	assert.Equal(t, 3, counts[0].Got)
	assert.Equal(t, 2, counts[0].Want)
}

func TestValidate_DeckLimitIgnoresCampaignCopies(t *testing.T) {
	d := legalRoland()
	d.Slots["01016"] = 3
	d.IgnoreDeckLimitSlots = deck.Slots{"01016": 1}

	result := validate(t, d)
	assert.Empty(t, result.Of(InvalidCardCount))
	assert.True(t, result.Valid(), "%+v", result.Problems)
}

func TestValidate_SealedCapsDeckLimit(t *testing.T) {
	d := legalRoland()
	d.Meta = `{"sealed_deck":"01006:1,01007:1,01016:1,01017:2,01018:2,01022:2,02040:2,04155:2,08079:2,07009:2,07309:1,09022:1,01086:2,01088:2,01030:2,01039:2,05314:2,60402:2"}`

	result := validate(t, d)
	counts := result.Of(InvalidCardCount)
	require.Len(t, counts, 1)
	assert.Equal(t, []string{"01016"}, counts[0].Cards)
	assert.Equal(t, 1, counts[0].Want)
}

func TestValidate_SealedReprintSharesAllowance(t *testing.T) {
	d := legalRoland()
	delete(d.Slots, "01016")
	d.Slots["60116"] = 2
	d.Meta = `{"sealed_deck":"01006:1,01007:1,01016:2,01017:2,01018:2,01022:2,02040:2,04155:2,08079:2,07009:2,07309:1,09022:1,01086:2,01088:2,01030:2,01039:2,05314:2,60402:2"}`

	result := validate(t, d)
	assert.Empty(t, result.Of(Forbidden))
	assert.Empty(t, result.Of(InvalidCardCount), "%+v", result.Of(InvalidCardCount))

	d.Meta = `{"sealed_deck":"01006:1,01007:1,01016:1,01017:2,01018:2,01022:2,02040:2,04155:2,08079:2,07009:2,07309:1,09022:1,01086:2,01088:2,01030:2,01039:2,05314:2,60402:2"}`
	counts := validate(t, d).Of(InvalidCardCount)
	require.Len(t, counts, 1)
	assert.Equal(t, []string{"60116"}, counts[0].Cards)
	assert.Equal(t, 1, counts[0].Want)
}

func TestValidate_AtLeast(t *testing.T) {
	d := &deck.Deck{
		InvestigatorCode: testutil.Lola,
		Slots:            deck.Slots{"01016": 2, "01030": 2, "01086": 2},
	}
	result := validate(t, d)
	atLeast := result.Of(InvalidDeckOption)
	require.Len(t, atLeast, 1, "guardian and seeker only; neutral does not count")
	assert.Equal(t, 2, atLeast[0].Got)
	assert.Equal(t, 3, atLeast[0].Want)

	d.Slots["01044"] = 1
	assert.Empty(t, validate(t, d).Of(InvalidDeckOption))
}

func TestValidate_FactionSelectLimit(t *testing.T) {
	d := &deck.Deck{
		InvestigatorCode: testutil.FactionPicker,
		Slots:            deck.Slots{"01016": 2, "01017": 2, "01018": 2, "01030": 2},
		Meta:             `{"faction_selected":"guardian"}`,
	}
	result := validate(t, d)
	limits := result.Of(InvalidDeckOption)
	require.Len(t, limits, 1)
	assert.Equal(t, 6, limits[0].Got)
	assert.Equal(t, 5, limits[0].Want)
	assert.Equal(t, []string{"01016", "01017", "01018"}, limits[0].Cards)
	assert.Empty(t, result.Of(Forbidden))

	d.Meta = `{"faction_selected":"rogue"}`
	result = validate(t, d)
	assert.Len(t, result.Of(Forbidden), 1, "guardian cards are out once rogue is picked")
}

func TestValidate_InvalidFactionSelection(t *testing.T) {
	d := &deck.Deck{
		InvestigatorCode: testutil.FactionPicker,
		Slots:            deck.Slots{"01030": 2},
		Meta:             `{"faction_selected":"mystic"}`,
	}
	result := validate(t, d)
	require.Len(t, result.Of(InvalidDeckOption), 1)
	assert.Contains(t, result.Of(InvalidDeckOption)[0].Message, "mystic")
}

func TestValidate_OptionSelect(t *testing.T) {
	d := &deck.Deck{
		InvestigatorCode: testutil.OptionPicker,
		Slots:            deck.Slots{"01044": 2, "01016": 2, "01086": 2},
		Meta:             `{"option_selected":"weapons"}`,
	}
	result := validate(t, d)
	limits := result.Of(InvalidDeckOption)
	require.Len(t, limits, 1, "the weapons choice allows two cards")
	assert.Equal(t, "Secondary", limits[0].Option)
	assert.Equal(t, 4, limits[0].Got)
	assert.Equal(t, 2, limits[0].Want)

	d.Meta = `{"option_selected":"spells"}`
	result = validate(t, d)
	assert.NotEmpty(t, result.Of(InvalidDeckOption))
	assert.NotEmpty(t, result.Of(Forbidden), "an unknown choice admits nothing")
}

func TestValidate_ExtraDeck(t *testing.T) {
	d := &deck.Deck{
		InvestigatorCode: testutil.Spiritualist,
		Slots:            deck.Slots{"01060": 2},
		Meta:             `{"extra_deck":"60402,01060"}`,
	}
	result := validate(t, d)

	var extra []Problem
	for _, p := range result.Problems {
		if p.Target == TargetExtraSlots {
			extra = append(extra, p)
		}
	}
	require.Len(t, extra, 1, "the extra deck holds the required two cards")
	assert.Equal(t, Forbidden, extra[0].Type)
	assert.Equal(t, []string{"01060"}, extra[0].Cards)

	d.Meta = `{"extra_deck":"60402"}`
	result = validate(t, d)
	require.Len(t, result.Of(TooFewCards), 2)
	assert.Equal(t, TargetExtraSlots, result.Of(TooFewCards)[1].Target)
}

func TestValidate_InvalidInvestigator(t *testing.T) {
	result := validate(t, &deck.Deck{InvestigatorCode: "01016", Slots: deck.Slots{}})
	assert.Len(t, result.Of(InvalidInvestigator), 1)
}

func TestValidate_OmittedCardsWarn(t *testing.T) {
	d := legalRoland()
	d.Slots["99999"] = 1

	result := validate(t, d)
	assert.True(t, result.Valid())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "99999")
}
