package deck

import (
	"sort"

	"github.com/arcanaland/deckwright/internal/card"
	"github.com/arcanaland/deckwright/internal/resolver"
)

// MaxCostBucket is the last cost bucket; it also counts every higher cost.
const MaxCostBucket = 7

// SkillIcons counts skill icons across a deck.
type SkillIcons struct {
	Willpower int
	Intellect int
	Combat    int
	Agility   int
	Wild      int
}

// TraitCount is one entry of the trait distribution.
type TraitCount struct {
	Trait string
	Count int
}

// Charts are the chart accumulators of a resolved deck.
type Charts struct {
	// CostHistogram counts copies per printed cost; X-cost and costless
	// cards are not counted.
	CostHistogram [MaxCostBucket + 1]int
	SkillIcons    SkillIcons
	// Factions counts copies per faction; multiclass cards count for every
	// faction they belong to.
	Factions map[string]int
	// Traits is ordered by count, then by name.
	Traits []TraitCount
}

type chartBuilder struct {
	charts Charts
	traits map[string]int
}

func newChartBuilder() *chartBuilder {
	return &chartBuilder{
		charts: Charts{Factions: make(map[string]int)},
		traits: make(map[string]int),
	}
}

func (b *chartBuilder) add(c *card.Card, qty int) {
	if c.IsWeakness() || qty <= 0 {
		return
	}
	if c.Cost != nil && *c.Cost >= 0 {
		bucket := min(*c.Cost, MaxCostBucket)
		b.charts.CostHistogram[bucket] += qty
	}

	icons := &b.charts.SkillIcons
	icons.Willpower += c.SkillWillpower * qty
	icons.Intellect += c.SkillIntellect * qty
	icons.Combat += c.SkillCombat * qty
	icons.Agility += c.SkillAgility * qty
	icons.Wild += c.SkillWild * qty

	for _, f := range c.Factions() {
		b.charts.Factions[f] += qty
	}
	for _, t := range c.TraitList() {
		b.traits[t] += qty
	}
}

func (b *chartBuilder) build(collator resolver.Collator) Charts {
	traits := make([]TraitCount, 0, len(b.traits))
	for t, n := range b.traits {
		traits = append(traits, TraitCount{Trait: t, Count: n})
	}
	sort.Slice(traits, func(i, j int) bool {
		if traits[i].Count != traits[j].Count {
			return traits[i].Count > traits[j].Count
		}
		if collator != nil {
			if n := collator.CompareString(traits[i].Trait, traits[j].Trait); n != 0 {
				return n < 0
			}
		}
		return traits[i].Trait < traits[j].Trait
	})
	b.charts.Traits = traits
	return b.charts
}
