package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/deckwright/internal/resolver"
	"github.com/arcanaland/deckwright/internal/testutil"
)

func writeDeck(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDeck_JSON(t *testing.T) {
	path := writeDeck(t, "deck.json", `{
		"id": 42,
		"name": "Roland",
		"investigator_code": "01001",
		"slots": {"01016": 2, "01030": 1},
		"ignoreDeckLimitSlots": {"01016": 1},
		"taboo_id": 7,
		"previous_deck": 41,
		"xp": 5,
		"meta": "{\"faction_selected\":\"rogue\"}"
	}`)

	d, err := LoadDeck(path)
	require.NoError(t, err)
	assert.Equal(t, ID("42"), d.ID)
	assert.Equal(t, Slots{"01016": 2, "01030": 1}, d.Slots)
	assert.Equal(t, Slots{"01016": 1}, d.IgnoreDeckLimitSlots)
	assert.Equal(t, 7, *d.TabooID)
	assert.True(t, d.IsUpgrade())
	assert.Equal(t, 5, *d.XP)
	assert.Equal(t, `{"faction_selected":"rogue"}`, d.Meta)
}

func TestLoadDeck_YAML(t *testing.T) {
	path := writeDeck(t, "deck.yaml", `
id: abc
name: Jenny
investigator_code: "02003"
slots:
  "08130": 1
  "01044": 2
exile_string: "01044"
`)

	d, err := LoadDeck(path)
	require.NoError(t, err)
	assert.Equal(t, ID("abc"), d.ID)
	assert.Equal(t, testutil.Jenny, d.InvestigatorCode)
	assert.Equal(t, Slots{"08130": 1, "01044": 2}, d.Slots)
	assert.Equal(t, Slots{"01044": 1}, d.ExileSlots())
	assert.False(t, d.IsUpgrade())
}

func TestLoadDeck_TOML(t *testing.T) {
	path := writeDeck(t, "deck.toml", `
id = "7"
name = "Lola"
investigator_code = "03006"
meta = '{"extra_deck":"60402"}'

[slots]
"01016" = 1
"01030" = 1
`)

	d, err := LoadDeck(path)
	require.NoError(t, err)
	assert.Equal(t, testutil.Lola, d.InvestigatorCode)
	assert.Equal(t, 2, d.Slots.Total())

	rd, err := Resolve(testDeps(), resolver.NewCollator("en"), d)
	require.NoError(t, err)
	assert.Equal(t, Slots{"60402": 1}, rd.ExtraSlots)
}

func TestLoadDeck_Errors(t *testing.T) {
	_, err := LoadDeck(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadDeck(writeDeck(t, "deck.txt", "{}"))
	assert.ErrorContains(t, err, "unsupported deck format")

	_, err = LoadDeck(writeDeck(t, "deck.json", `{"slots":{}}`))
	assert.ErrorContains(t, err, "investigator_code is required")

	_, err = LoadDeck(writeDeck(t, "deck.json", `{"investigator_code":`))
	assert.Error(t, err)
}

func TestSlots(t *testing.T) {
	s := Slots{"b": 1, "a": 2, "c": 0}
	assert.Equal(t, []string{"a", "b"}, s.Codes())
	assert.Equal(t, 3, s.Total())
}
