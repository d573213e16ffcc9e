package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/arcanaland/deckwright/internal/card"
)

// File names inside a data directory.
const (
	CardsFile         = "cards.json"
	PacksFile         = "packs.json"
	CyclesFile        = "cycles.json"
	EncounterSetsFile = "encounter_sets.json"
	TabooSetsFile     = "taboo_sets.json"
	TaboosFile        = "taboos.json"
	LookupTablesFile  = "lookup_tables.json"
)

// ErrNoCards is returned when a data directory has no card file.
var ErrNoCards = errors.New("card data not found")

// Load reads the card database and lookup tables from dir. Only the card
// file is mandatory; other files default to empty collections.
func Load(dir string) (*Metadata, *LookupTables, error) {
	meta := New()

	var cards []*card.Card
	found, err := readJSON(filepath.Join(dir, CardsFile), &cards)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, nil, errors.Wrapf(ErrNoCards, "looking in %s", dir)
	}
	for _, c := range cards {
		if c.Code == "" {
			continue
		}
		meta.Cards[c.Code] = c
	}

	var packs []*Pack
	if _, err := readJSON(filepath.Join(dir, PacksFile), &packs); err != nil {
		return nil, nil, err
	}
	for _, p := range packs {
		meta.Packs[p.Code] = p
	}

	var cycles []*Cycle
	if _, err := readJSON(filepath.Join(dir, CyclesFile), &cycles); err != nil {
		return nil, nil, err
	}
	for _, c := range cycles {
		meta.Cycles[c.Code] = c
	}

	var sets []*EncounterSet
	if _, err := readJSON(filepath.Join(dir, EncounterSetsFile), &sets); err != nil {
		return nil, nil, err
	}
	for _, s := range sets {
		meta.EncounterSets[s.Code] = s
	}

	var tabooSets []*TabooSet
	if _, err := readJSON(filepath.Join(dir, TabooSetsFile), &tabooSets); err != nil {
		return nil, nil, err
	}
	for _, s := range tabooSets {
		meta.TabooSets[s.ID] = s
	}

	var taboos []*card.Taboo
	if _, err := readJSON(filepath.Join(dir, TaboosFile), &taboos); err != nil {
		return nil, nil, err
	}
	for _, t := range taboos {
		meta.Taboos[TabooKey(t.Code, t.TabooSetID)] = t
	}

	lookup := NewLookupTables()
	if _, err := readJSON(filepath.Join(dir, LookupTablesFile), lookup); err != nil {
		return nil, nil, err
	}

	return meta, lookup, nil
}

// readJSON decodes path into v. A missing file is reported as not found
// without an error.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "reading %s", filepath.Base(path))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.Wrapf(err, "decoding %s", filepath.Base(path))
	}
	return true, nil
}
