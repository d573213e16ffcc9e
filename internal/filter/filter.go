// Package filter implements card predicates: generic combinators, the deck
// option interpreter and the investigator access filters built on it. The
// same predicates back UI list filtering and deck validation.
package filter

import (
	"strings"

	"github.com/arcanaland/deckwright/internal/card"
)

// Filter reports whether a card passes.
type Filter func(c *card.Card) bool

// All accepts every card.
func All(*card.Card) bool { return true }

// And accepts a card when every filter does. Nil filters are ignored.
func And(filters ...Filter) Filter {
	filters = compact(filters)
	return func(c *card.Card) bool {
		for _, f := range filters {
			if !f(c) {
				return false
			}
		}
		return true
	}
}

// Or accepts a card when any filter does. An empty Or accepts nothing.
func Or(filters ...Filter) Filter {
	filters = compact(filters)
	return func(c *card.Card) bool {
		for _, f := range filters {
			if f(c) {
				return true
			}
		}
		return false
	}
}

// Not negates f.
func Not(f Filter) Filter {
	return func(c *card.Card) bool { return !f(c) }
}

// Apply returns the cards accepted by f, preserving order.
func Apply(cards []*card.Card, f Filter) []*card.Card {
	var out []*card.Card
	for _, c := range cards {
		if f(c) {
			out = append(out, c)
		}
	}
	return out
}

func compact(filters []Filter) []Filter {
	out := filters[:0:0]
	for _, f := range filters {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

// Type accepts cards of any of the given type codes.
func Type(types ...string) Filter {
	return func(c *card.Card) bool {
		return containsFold(types, c.TypeCode)
	}
}

// Faction accepts cards belonging to any of the given factions.
func Faction(factions ...string) Filter {
	return func(c *card.Card) bool {
		for _, f := range c.Factions() {
			if containsFold(factions, f) {
				return true
			}
		}
		return false
	}
}

// Trait accepts cards carrying any of the given traits.
func Trait(traits ...string) Filter {
	return func(c *card.Card) bool {
		for _, t := range traits {
			if c.HasTrait(t) {
				return true
			}
		}
		return false
	}
}

// Level accepts cards whose deckbuilding level lies in r.
func Level(r card.LevelRange) Filter {
	return func(c *card.Card) bool {
		level, ok := c.Level()
		return ok && r.Contains(level)
	}
}

// Official accepts cards from the official card pool.
func Official(c *card.Card) bool {
	return c.IsOfficial()
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
