// Package deck loads raw deck records and aggregates them into resolved
// decks: every slot collection resolved to concrete cards, with deck size,
// experience and chart data derived from them.
package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ID identifies a deck. Exports carry either numeric or string ids.
type ID string

// UnmarshalJSON accepts a JSON number or string.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("deck id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Slots maps card codes to quantities.
type Slots map[string]int

// Codes returns the codes with a positive quantity, sorted.
func (s Slots) Codes() []string {
	codes := make([]string, 0, len(s))
	for code, qty := range s {
		if qty > 0 {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// Total returns the sum of all positive quantities.
func (s Slots) Total() int {
	total := 0
	for _, qty := range s {
		if qty > 0 {
			total += qty
		}
	}
	return total
}

// Deck is a raw deck record as exported by deckbuilding sites. Meta is the
// serialized JSON blob holding customizations, selections and card pool data.
type Deck struct {
	ID                   ID     `json:"id" yaml:"id" toml:"id"`
	Name                 string `json:"name" yaml:"name" toml:"name"`
	InvestigatorCode     string `json:"investigator_code" yaml:"investigator_code" toml:"investigator_code"`
	Slots                Slots  `json:"slots" yaml:"slots" toml:"slots"`
	SideSlots            Slots  `json:"sideSlots,omitempty" yaml:"side_slots,omitempty" toml:"side_slots,omitempty"`
	IgnoreDeckLimitSlots Slots  `json:"ignoreDeckLimitSlots,omitempty" yaml:"ignore_deck_limit_slots,omitempty" toml:"ignore_deck_limit_slots,omitempty"`
	ExileString          string `json:"exile_string,omitempty" yaml:"exile_string,omitempty" toml:"exile_string,omitempty"`
	TabooID              *int   `json:"taboo_id,omitempty" yaml:"taboo_id,omitempty" toml:"taboo_id,omitempty"`
	Meta                 string `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
	Version              string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	PreviousDeck         *int   `json:"previous_deck,omitempty" yaml:"previous_deck,omitempty" toml:"previous_deck,omitempty"`
	NextDeck             *int   `json:"next_deck,omitempty" yaml:"next_deck,omitempty" toml:"next_deck,omitempty"`
	XP                   *int   `json:"xp,omitempty" yaml:"xp,omitempty" toml:"xp,omitempty"`
	XPAdjustment         int    `json:"xp_adjustment,omitempty" yaml:"xp_adjustment,omitempty" toml:"xp_adjustment,omitempty"`
	DateUpdate           string `json:"date_update,omitempty" yaml:"date_update,omitempty" toml:"date_update,omitempty"`
}

// IsUpgrade reports whether the deck continues an earlier deck of a campaign.
func (d *Deck) IsUpgrade() bool {
	return d.PreviousDeck != nil
}

// ExileSlots decodes the comma-separated exile list; a repeated code counts
// one copy per occurrence.
func (d *Deck) ExileSlots() Slots {
	return parseCodeList(d.ExileString)
}

// LoadDeck loads a deck file. The format is chosen by extension: .json,
// .yaml/.yml or .toml.
func LoadDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading deck file: %w", err)
	}

	d, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filepath.Base(path), err)
	}
	return d, nil
}

// Parse decodes a deck in the format named by ext.
func Parse(data []byte, ext string) (*Deck, error) {
	var d Deck
	switch strings.ToLower(ext) {
	case ".json", "":
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, err
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &d); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported deck format %q", ext)
	}

	if d.InvestigatorCode == "" {
		return nil, fmt.Errorf("investigator_code is required")
	}
	if d.Slots == nil {
		d.Slots = Slots{}
	}
	return &d, nil
}

func parseCodeList(s string) Slots {
	slots := Slots{}
	for _, code := range strings.Split(s, ",") {
		if code = strings.TrimSpace(code); code != "" {
			slots[code]++
		}
	}
	return slots
}
