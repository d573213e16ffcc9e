package deck

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/deckwright/internal/card"
	"github.com/arcanaland/deckwright/internal/metadata"
	"github.com/arcanaland/deckwright/internal/resolver"
	"github.com/arcanaland/deckwright/internal/testutil"
)

func testDeps() Deps {
	meta, lookup := testutil.Database()
	return Deps{Metadata: meta, Lookup: lookup}
}

func resolveDeck(t *testing.T, d *Deck) *ResolvedDeck {
	t.Helper()
	rd, err := Resolve(testDeps(), resolver.NewCollator("en"), d)
	require.NoError(t, err)
	return rd
}

func rolandDeck() *Deck {
	return &Deck{
		ID:               "1",
		InvestigatorCode: testutil.Roland,
		Slots: Slots{
			"01016": 2,
			"01030": 2,
			"01006": 1,
			"01007": 1,
			"01022": 2,
		},
	}
}

func TestResolve(t *testing.T) {
	rd := resolveDeck(t, rolandDeck())

	assert.Equal(t, testutil.Roland, rd.InvestigatorFront.Card.Code)
	assert.Same(t, rd.InvestigatorFront, rd.InvestigatorBack)
	assert.Len(t, rd.Cards.Slots, 5)
	assert.Equal(t, 6, rd.DeckSize, "signature and weakness do not count")
	assert.Equal(t, 8, rd.DeckSizeTotal)
	assert.Equal(t, 2, rd.XPRequired)
	assert.Empty(t, rd.Omitted)
	assert.Nil(t, rd.FanMadeData)
}

func TestResolve_Charts(t *testing.T) {
	rd := resolveDeck(t, rolandDeck())
	charts := rd.Charts

	assert.Equal(t, [MaxCostBucket + 1]int{0, 4, 0, 1, 2, 0, 0, 0}, charts.CostHistogram)
	assert.Equal(t, SkillIcons{Intellect: 6, Agility: 2}, charts.SkillIcons)
	assert.Equal(t, map[string]int{"guardian": 4, "seeker": 2, "neutral": 1}, charts.Factions)
	assert.Equal(t, []TraitCount{
		{"Item", 5},
		{"Firearm", 3},
		{"Weapon", 3},
		{"Insight", 2},
		{"Tool", 2},
	}, charts.Traits)
}

func TestResolve_Deterministic(t *testing.T) {
	d := rolandDeck()
	d.Meta = `{"cus_09022":"0|1,1|2","faction_selected":"rogue"}`
	d.Slots["09022"] = 1
	d.Slots["05313"] = 1

	first := resolveDeck(t, d)
	second := resolveDeck(t, d)
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestResolve_MyriadCountsOnce(t *testing.T) {
	rd := resolveDeck(t, &Deck{
		InvestigatorCode: testutil.Roland,
		Slots:            Slots{"07009": 2, "07309": 1},
	})

	assert.Equal(t, 1, rd.XPRequired)
	assert.Equal(t, 3, rd.DeckSize)
}

func TestResolve_IgnoredCopiesFloorAtZero(t *testing.T) {
	rd := resolveDeck(t, &Deck{
		InvestigatorCode:     testutil.Roland,
		Slots:                Slots{"01016": 1, "01018": 2},
		IgnoreDeckLimitSlots: Slots{"01016": 2, "01018": 1},
	})

	assert.Equal(t, 1, rd.DeckSize)
	assert.Equal(t, 3, rd.DeckSizeTotal)
}

func TestResolve_Taboo(t *testing.T) {
	d := &Deck{InvestigatorCode: testutil.Roland, Slots: Slots{"01016": 2}, TabooID: testutil.Int(testutil.TabooSet)}
	rd := resolveDeck(t, d)

	assert.Equal(t, 2, rd.XPRequired, "taboo adds one experience per copy")
	assert.Equal(t, "Uses (3 ammo).", rd.Cards.Slots["01016"].Card.Text)
}

func TestResolve_CustomizationXP(t *testing.T) {
	rd := resolveDeck(t, &Deck{
		InvestigatorCode: testutil.Roland,
		Slots:            Slots{"09022": 1},
		Meta:             `{"cus_09022":"0|1,1|2"}`,
	})

	armor := rd.Cards.Slots["09022"].Card
	assert.Equal(t, 3, armor.CustomizationXP)
	assert.Equal(t, 4, *armor.Health)
	assert.Equal(t, 3, rd.XPRequired)
}

func TestResolve_BondedCards(t *testing.T) {
	rd := resolveDeck(t, &Deck{
		InvestigatorCode: testutil.Roland,
		Slots:            Slots{"05313": 1},
	})

	assert.Equal(t, Slots{"05314": 3}, rd.BondedSlots, "hidden back faces and self references are excluded")
	assert.Contains(t, rd.Cards.BondedSlots, "05314")
	assert.Equal(t, 1, rd.DeckSize, "bonded cards do not count toward deck size")
	assert.Equal(t, 1, rd.DeckSizeTotal)
}

func TestResolve_BondedAlreadyInDeck(t *testing.T) {
	rd := resolveDeck(t, &Deck{
		InvestigatorCode: testutil.Roland,
		Slots:            Slots{"05313": 1, "05314": 3},
	})
	assert.Empty(t, rd.BondedSlots)
}

func TestResolve_SideExileAndExtra(t *testing.T) {
	rd := resolveDeck(t, &Deck{
		InvestigatorCode: testutil.Spiritualist,
		Slots:            Slots{"01060": 2},
		SideSlots:        Slots{"02040": 1},
		ExileString:      "01060,01060",
		Meta:             `{"extra_deck":"60402,60403"}`,
	})

	assert.Equal(t, Slots{"02040": 1}, rd.SideSlots)
	assert.Equal(t, Slots{"01060": 2}, rd.ExileSlots)
	assert.Equal(t, Slots{"60402": 1, "60403": 1}, rd.ExtraSlots)
	assert.Equal(t, 2, rd.DeckSize)
	assert.Equal(t, 4, rd.DeckSizeTotal, "extra slots count toward the total")
	assert.Zero(t, rd.XPRequired, "side slots never cost experience")
}

func TestResolve_ExtraSlotsCostExperience(t *testing.T) {
	rd := resolveDeck(t, &Deck{
		InvestigatorCode: testutil.Spiritualist,
		Slots:            Slots{},
		Meta:             `{"extra_deck":"01022"}`,
	})
	assert.Equal(t, 1, rd.XPRequired)
}

func TestResolve_FanMadeData(t *testing.T) {
	rd := resolveDeck(t, &Deck{
		InvestigatorCode: testutil.Roland,
		Slots:            Slots{"zz001": 1},
	})

	require.NotNil(t, rd.FanMadeData)
	assert.Contains(t, rd.FanMadeData.Cards, "zz001")
	assert.Contains(t, rd.FanMadeData.Packs, "fan1")
	assert.Contains(t, rd.FanMadeData.Cycles, "fanc")
}

func TestResolve_DropsUnknownCards(t *testing.T) {
	var buf bytes.Buffer
	deps := testDeps()
	deps.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rd, err := Resolve(deps, nil, &Deck{
		InvestigatorCode: testutil.Roland,
		Slots:            Slots{"01016": 1, "99999": 2},
		SideSlots:        Slots{"88888": 1},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"88888", "99999"}, rd.Omitted)
	assert.NotContains(t, rd.Slots, "99999")
	assert.Equal(t, 1, rd.DeckSize)
	assert.Contains(t, buf.String(), "dropping unresolved slot")
}

func TestResolve_MissingInvestigator(t *testing.T) {
	_, err := Resolve(testDeps(), nil, &Deck{InvestigatorCode: "00000", Slots: Slots{}})
	assert.ErrorIs(t, err, ErrNoInvestigator)
}

func TestResolve_MalformedMetaIsIgnored(t *testing.T) {
	rd := resolveDeck(t, &Deck{
		InvestigatorCode: testutil.Roland,
		Slots:            Slots{"01016": 1},
		Meta:             `{not json`,
	})
	assert.Equal(t, 1, rd.DeckSize)
	assert.Empty(t, rd.Meta.Selections)
}

func TestResolve_AlternateBack(t *testing.T) {
	rd := resolveDeck(t, &Deck{
		InvestigatorCode: testutil.Roland,
		Slots:            Slots{},
		Meta:             `{"alternate_back":"02003"}`,
	})

	assert.Equal(t, testutil.Roland, rd.InvestigatorFront.Card.Code)
	assert.Equal(t, testutil.Jenny, rd.InvestigatorBack.Card.Code)
	assert.Equal(t, []string{testutil.Roland, testutil.Jenny}, rd.InvestigatorCodes())
}

func TestResolve_AlternateBackBondedCards(t *testing.T) {
	deps := testDeps()
	deps.Lookup.Relations.Bonded[testutil.Jenny] = metadata.CodeSet{"05314": 1}

	rd, err := Resolve(deps, nil, &Deck{
		InvestigatorCode: testutil.Roland,
		Slots:            Slots{},
		Meta:             `{"alternate_back":"02003"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, Slots{"05314": 3}, rd.BondedSlots)

	rd, err = Resolve(deps, nil, &Deck{InvestigatorCode: testutil.Roland, Slots: Slots{}})
	require.NoError(t, err)
	assert.Empty(t, rd.BondedSlots)
}

func TestResolve_DoesNotMutateDatabase(t *testing.T) {
	deps := testDeps()
	before := *deps.Metadata.Cards["09022"]

	_, err := Resolve(deps, nil, &Deck{
		InvestigatorCode: testutil.Roland,
		Slots:            Slots{"09022": 1},
		TabooID:          testutil.Int(testutil.TabooSet),
		Meta:             `{"cus_09022":"0|1,1|2,2|1|Relic"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, before, *deps.Metadata.Cards["09022"])
}

func TestChartBuilder_PipeDelimitedTraits(t *testing.T) {
	b := newChartBuilder()
	b.add(&card.Card{Code: "a", FactionCode: "guardian", Traits: "Item|Weapon|Firearm"}, 2)
	b.add(&card.Card{Code: "b", FactionCode: "guardian", Traits: "Item. Tool."}, 1)

	assert.Equal(t, []TraitCount{
		{Trait: "Item", Count: 3},
		{Trait: "Firearm", Count: 2},
		{Trait: "Weapon", Count: 2},
		{Trait: "Tool", Count: 1},
	}, b.build(nil).Traits)
}
