// Package resolver turns card codes into concrete cards for a given taboo set
// and customization state, optionally attaching related cards.
//
// Resolution is a pure pipeline: base card, then taboo overlay, then
// customization overlay. Each stage copies; the database is never written.
package resolver

import (
	"github.com/pkg/errors"

	"github.com/arcanaland/deckwright/internal/card"
	"github.com/arcanaland/deckwright/internal/metadata"
)

// ErrCardNotFound is returned for codes missing from the card database.
// Callers treat it as a recoverable omission.
var ErrCardNotFound = errors.New("card not found")

// Customizations maps card codes to their per-option purchase state.
type Customizations map[string]map[int]card.Customization

// ResolveCard resolves code into a card with the taboo set and customizations
// applied. tabooSetID and customizations may be nil.
func ResolveCard(meta *metadata.Metadata, code string, tabooSetID *int, customizations Customizations) (*card.Card, error) {
	base, ok := meta.Card(code)
	if !ok {
		return nil, errors.Wrap(ErrCardNotFound, code)
	}

	c := *base
	if tabooSetID != nil {
		if taboo, ok := meta.Taboo(code, *tabooSetID); ok {
			c = applyTaboo(c, taboo)
		}
	}
	if cus, ok := customizations[code]; ok && c.IsCustomizable() {
		c = applyCustomizations(c, cus)
	}
	return &c, nil
}

// applyTaboo overlays the non-nil fields of taboo onto c.
func applyTaboo(c card.Card, taboo *card.Taboo) card.Card {
	id := taboo.TabooSetID
	c.TabooSetID = &id
	if taboo.XP != nil {
		c.TabooXP = *taboo.XP
	}
	if taboo.Text != nil {
		c.Text = *taboo.Text
	}
	if taboo.Exceptional != nil {
		c.Exceptional = *taboo.Exceptional
	}
	if taboo.DeckLimit != nil {
		limit := *taboo.DeckLimit
		c.DeckLimit = &limit
	}
	if taboo.DeckOptions != nil {
		c.DeckOptions = taboo.DeckOptions
	}
	if taboo.DeckRequirements != nil {
		c.DeckRequirements = taboo.DeckRequirements
	}
	if taboo.CustomizationOptions != nil {
		c.CustomizationOptions = taboo.CustomizationOptions
	}
	if taboo.CustomizationText != nil {
		c.CustomizationText = *taboo.CustomizationText
	}
	return c
}
