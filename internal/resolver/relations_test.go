package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/deckwright/internal/card"
	"github.com/arcanaland/deckwright/internal/testutil"
)

func codes(cards []*card.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Code)
	}
	return out
}

func TestResolveCardWithRelations(t *testing.T) {
	meta, lookup := testutil.Database()

	rc, err := ResolveCardWithRelations(meta, lookup, NewCollator("en"), Request{
		Code:          testutil.Roland,
		WithRelations: true,
	})
	require.NoError(t, err)
	require.NotNil(t, rc.Relations)

	assert.Equal(t, []string{"01007", "01006"}, codes(rc.Relations.RequiredCards), "ordered by name")
	assert.Nil(t, rc.Relations.Parallel)
	assert.Nil(t, rc.Relations.Bonded)
}

func TestResolveCardWithRelations_SkipsSelfAndMissing(t *testing.T) {
	meta, lookup := testutil.Database()

	rc, err := ResolveCardWithRelations(meta, lookup, nil, Request{Code: "05313", WithRelations: true})
	require.NoError(t, err)

	// the self reference is dropped; the hidden back is still a relation,
	// filtering it is up to the deck aggregator
	assert.Equal(t, []string{"05314b", "05314"}, codes(rc.Relations.Bonded))

	rc, err = ResolveCardWithRelations(meta, lookup, nil, Request{Code: "01016", WithRelations: true})
	require.NoError(t, err)
	assert.Nil(t, rc.Relations.Level, "unknown related codes are omitted")
	assert.Equal(t, []string{"60116"}, codes(rc.Relations.Duplicates))
}

func TestResolveCardWithRelations_OneHop(t *testing.T) {
	meta, lookup := testutil.Database()

	rc, err := ResolveCardWithRelations(meta, lookup, nil, Request{Code: "05314", WithRelations: true})
	require.NoError(t, err)
	require.Len(t, rc.Relations.Bound, 1)
	assert.Equal(t, "05313", rc.Relations.Bound[0].Code)
}

func TestResolveCardWithRelations_WithoutRelations(t *testing.T) {
	meta, lookup := testutil.Database()

	rc, err := ResolveCardWithRelations(meta, lookup, nil, Request{Code: "05313"})
	require.NoError(t, err)
	assert.Nil(t, rc.Relations)
}

func TestResolveCardWithRelations_TabooThreadsThrough(t *testing.T) {
	meta, lookup := testutil.Database()
	taboo := testutil.TabooSet

	rc, err := ResolveCardWithRelations(meta, lookup, nil, Request{Code: "60116", TabooSetID: &taboo, WithRelations: true})
	require.NoError(t, err)
	require.Len(t, rc.Relations.Duplicates, 1)
	assert.Equal(t, 1, rc.Relations.Duplicates[0].TabooXP)
}

func TestSortByName_Collator(t *testing.T) {
	cards := []*card.Card{
		{Code: "3", Name: "beta"},
		{Code: "2", Name: "Alpha"},
		{Code: "1", Name: "alpha"},
	}
	SortByName(cards, NewCollator("en"))
	assert.Equal(t, []string{"1", "2", "3"}, codes(cards))
}
