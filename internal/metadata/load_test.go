package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, CardsFile, `[
		{"code": "01001", "name": "Roland Banks", "type_code": "investigator", "faction_code": "guardian", "pack_code": "core"},
		{"code": "01006", "name": "Roland's .38 Special", "type_code": "asset", "faction_code": "neutral", "pack_code": "core", "xp": 0},
		{"name": "no code"}
	]`)
	writeFile(t, dir, PacksFile, `[{"code": "core", "name": "Core Set", "cycle_code": "core"}]`)
	writeFile(t, dir, TaboosFile, `[{"code": "01006", "taboo_set_id": 7, "xp": 1}]`)
	writeFile(t, dir, TabooSetsFile, `[{"id": 7, "name": "2024"}, {"id": 3, "name": "2020"}]`)
	writeFile(t, dir, LookupTablesFile, `{"relations": {"requiredCards": {"01001": {"01006": 1}}}, "uses": {"ammo": {"01006": 1}}}`)

	meta, lookup, err := Load(dir)
	require.NoError(t, err)

	assert.Len(t, meta.Cards, 2)
	assert.Equal(t, "core", meta.CycleOf("core"))

	taboo, ok := meta.Taboo("01006", 7)
	require.True(t, ok)
	assert.Equal(t, 1, *taboo.XP)

	latest, ok := meta.LatestTabooSet()
	require.True(t, ok)
	assert.Equal(t, 7, latest)

	assert.True(t, lookup.Relations.RequiredCards.Get("01001").Has("01006"))
	assert.True(t, lookup.HasUses("ammo", "01006"))
	assert.False(t, lookup.HasUses("charges", "01006"))
	assert.Equal(t, []string{"01001", "01006"}, meta.SortedCodes())
}

func TestLoad_MissingCards(t *testing.T) {
	_, _, err := Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoCards))
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, CardsFile, `[]`)
	writeFile(t, dir, PacksFile, `{not json`)

	_, _, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), PacksFile)
}

func TestCodeSet_NilSafe(t *testing.T) {
	var idx Index
	assert.False(t, idx.Get("x").Has("y"))
	assert.Empty(t, idx.Get("x").Codes())

	var tables *LookupTables
	assert.False(t, tables.HasUses("ammo", "01006"))
}
