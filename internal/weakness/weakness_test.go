package weakness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/deckwright/internal/deck"
	"github.com/arcanaland/deckwright/internal/metadata"
	"github.com/arcanaland/deckwright/internal/resolver"
	"github.com/arcanaland/deckwright/internal/testutil"
)

func resolved(t *testing.T, d *deck.Deck) (*metadata.Metadata, *metadata.LookupTables, *deck.ResolvedDeck) {
	t.Helper()
	meta, lookup := testutil.Database()
	rd, err := deck.Resolve(deck.Deps{Metadata: meta, Lookup: lookup}, resolver.NewCollator("en"), d)
	require.NoError(t, err)
	return meta, lookup, rd
}

func codes(candidates []Candidate) []string {
	var out []string
	for _, c := range candidates {
		out = append(out, c.Card.Code)
	}
	return out
}

func TestRandomBasicWeaknessForDeck_SoleRemainingDraw(t *testing.T) {
	meta, lookup, rd := resolved(t, &deck.Deck{
		InvestigatorCode: testutil.Jenny,
		Slots:            deck.Slots{"08130": 1, "08132": 1, "08133": 1},
	})

	for seed := uint64(0); seed < 20; seed++ {
		code, err := RandomBasicWeaknessForDeck(meta, lookup, rd, Collection{"eoep": 1}, NewRand(seed))
		require.NoError(t, err)
		assert.Equal(t, "08131", code)
	}
}

func TestCandidates(t *testing.T) {
	meta, lookup, roland := resolved(t, &deck.Deck{InvestigatorCode: testutil.Roland, Slots: deck.Slots{"01097": 1}})
	got := Candidates(meta, lookup, roland, Collection{"core": 2, "eoep": 1})
	assert.Equal(t, []string{"01097", "08130", "08131", "08132", "08133", "08134"}, codes(got))
	assert.Equal(t, 1, got[0].Available, "two owned copies minus the one in the deck")

	_, _, jenny := resolved(t, &deck.Deck{InvestigatorCode: testutil.Jenny, Slots: deck.Slots{}})
	got = Candidates(meta, lookup, jenny, Collection{"eoep": 1})
	assert.NotContains(t, codes(got), "08134", "restricted to detectives")
	assert.NotContains(t, codes(got), "01097", "core is not owned")
}

func TestCandidates_NilCollectionOwnsEverything(t *testing.T) {
	meta, lookup, rd := resolved(t, &deck.Deck{InvestigatorCode: testutil.Jenny, Slots: deck.Slots{}})
	got := Candidates(meta, lookup, rd, nil)
	assert.Equal(t, []string{"01097", "08130", "08131", "08132", "08133"}, codes(got))
}

func TestCandidates_CardPool(t *testing.T) {
	meta, lookup, rd := resolved(t, &deck.Deck{
		InvestigatorCode: testutil.Jenny,
		Slots:            deck.Slots{},
		Meta:             `{"card_pool":"core"}`,
	})
	got := Candidates(meta, lookup, rd, nil)
	assert.Equal(t, []string{"01097"}, codes(got))
}

func TestCandidates_ScansCardsWithoutLookup(t *testing.T) {
	meta, _, rd := resolved(t, &deck.Deck{InvestigatorCode: testutil.Jenny, Slots: deck.Slots{}})
	got := Candidates(meta, nil, rd, Collection{"eoep": 1})
	assert.Equal(t, []string{"08130", "08131", "08132", "08133"}, codes(got))
}

func TestRandomBasicWeaknessForDeck_Exhausted(t *testing.T) {
	meta, lookup, rd := resolved(t, &deck.Deck{
		InvestigatorCode: testutil.Jenny,
		Slots:            deck.Slots{"08130": 1, "08131": 1, "08132": 1, "08133": 1},
	})
	_, err := RandomBasicWeaknessForDeck(meta, lookup, rd, Collection{"eoep": 1}, NewRand(1))
	assert.ErrorIs(t, err, ErrNoWeakness)
}

func TestRandomBasicWeaknessForDeck_Deterministic(t *testing.T) {
	meta, lookup, rd := resolved(t, &deck.Deck{InvestigatorCode: testutil.Roland, Slots: deck.Slots{}})
	a, err := RandomBasicWeaknessForDeck(meta, lookup, rd, nil, NewRand(42))
	require.NoError(t, err)
	b, err := RandomBasicWeaknessForDeck(meta, lookup, rd, nil, NewRand(42))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNewSeed(t *testing.T) {
	_, err := NewSeed()
	assert.NoError(t, err)
}
