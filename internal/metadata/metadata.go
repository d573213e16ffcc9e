// Package metadata holds the read-only card database and its precomputed
// lookup tables. Nothing in this module mutates either after loading.
package metadata

import (
	"sort"
	"strconv"

	"github.com/arcanaland/deckwright/internal/card"
)

// Metadata is the card database keyed by code.
type Metadata struct {
	Cards         map[string]*card.Card    `json:"cards"`
	Packs         map[string]*Pack         `json:"packs"`
	Cycles        map[string]*Cycle        `json:"cycles"`
	EncounterSets map[string]*EncounterSet `json:"encounter_sets"`
	// Taboos are keyed by TabooKey.
	Taboos    map[string]*card.Taboo `json:"taboos"`
	TabooSets map[int]*TabooSet      `json:"taboo_sets"`
}

// Pack is a product containing cards.
type Pack struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	CycleCode string `json:"cycle_code"`
	Position  int    `json:"position"`
	Official  *bool  `json:"official,omitempty"`
}

// Cycle groups packs.
type Cycle struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Official *bool  `json:"official,omitempty"`
}

// EncounterSet groups encounter cards.
type EncounterSet struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	PackCode string `json:"pack_code,omitempty"`
}

// TabooSet is one published taboo list.
type TabooSet struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Active bool   `json:"active,omitempty"`
}

// New returns an empty Metadata with initialized maps.
func New() *Metadata {
	return &Metadata{
		Cards:         make(map[string]*card.Card),
		Packs:         make(map[string]*Pack),
		Cycles:        make(map[string]*Cycle),
		EncounterSets: make(map[string]*EncounterSet),
		Taboos:        make(map[string]*card.Taboo),
		TabooSets:     make(map[int]*TabooSet),
	}
}

// TabooKey returns the Taboos key of a card within a taboo set.
func TabooKey(code string, tabooSetID int) string {
	return code + "-" + strconv.Itoa(tabooSetID)
}

// Card returns the database card for code.
func (m *Metadata) Card(code string) (*card.Card, bool) {
	c, ok := m.Cards[code]
	return c, ok
}

// Taboo returns the taboo patch for a card in a taboo set.
func (m *Metadata) Taboo(code string, tabooSetID int) (*card.Taboo, bool) {
	t, ok := m.Taboos[TabooKey(code, tabooSetID)]
	return t, ok
}

// CycleOf returns the cycle code of a pack, or "".
func (m *Metadata) CycleOf(packCode string) string {
	if p, ok := m.Packs[packCode]; ok {
		return p.CycleCode
	}
	return ""
}

// LatestTabooSet returns the highest taboo set id, or false when there is none.
func (m *Metadata) LatestTabooSet() (int, bool) {
	latest, found := 0, false
	for id := range m.TabooSets {
		if !found || id > latest {
			latest, found = id, true
		}
	}
	return latest, found
}

// SortedCodes returns all card codes in ascending order.
func (m *Metadata) SortedCodes() []string {
	codes := make([]string, 0, len(m.Cards))
	for code := range m.Cards {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
