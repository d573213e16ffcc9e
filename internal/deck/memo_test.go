package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/deckwright/internal/resolver"
)

func TestCacheKey_ValueEquality(t *testing.T) {
	a, b := rolandDeck(), rolandDeck()
	assert.Equal(t, CacheKey(a), CacheKey(b))

	b.Slots["01016"] = 1
	assert.NotEqual(t, CacheKey(a), CacheKey(b))

	c := rolandDeck()
	c.DateUpdate = "2024-05-01T10:00:00Z"
	assert.NotEqual(t, CacheKey(a), CacheKey(c))

	d := rolandDeck()
	d.Meta = `{"faction_selected":"rogue"}`
	assert.NotEqual(t, CacheKey(a), CacheKey(d))

	e := rolandDeck()
	e.Name = "Renamed"
	assert.NotEqual(t, CacheKey(a), CacheKey(e))

	f := rolandDeck()
	previous := 7
	f.PreviousDeck = &previous
	assert.NotEqual(t, CacheKey(a), CacheKey(f))

	g := rolandDeck()
	next := 9
	g.NextDeck = &next
	assert.NotEqual(t, CacheKey(a), CacheKey(g))
}

func TestMemo_UpgradeChainChange(t *testing.T) {
	memo := NewMemo(testDeps(), nil)

	first, err := memo.Resolve(rolandDeck())
	require.NoError(t, err)
	assert.False(t, first.Deck.IsUpgrade())

	upgraded := rolandDeck()
	previous := 1
	upgraded.PreviousDeck = &previous
	second, err := memo.Resolve(upgraded)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.True(t, second.Deck.IsUpgrade())
}

func TestMemo(t *testing.T) {
	memo := NewMemo(testDeps(), resolver.NewCollator("en"))

	first, err := memo.Resolve(rolandDeck())
	require.NoError(t, err)
	second, err := memo.Resolve(rolandDeck())
	require.NoError(t, err)
	assert.Same(t, first, second, "an equal deck value reuses the resolution")

	changed := rolandDeck()
	changed.Slots["01018"] = 2
	third, err := memo.Resolve(changed)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, first.DeckSize+2, third.DeckSize)
}
