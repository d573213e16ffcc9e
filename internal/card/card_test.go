package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraitList(t *testing.T) {
	tests := []struct {
		name   string
		traits string
		want   []string
	}{
		{"dotted", "Item. Weapon. Firearm.", []string{"Item", "Weapon", "Firearm"}},
		{"piped", "Item|Weapon|Firearm", []string{"Item", "Weapon", "Firearm"}},
		{"padded pipes", "| Ally | Police |", []string{"Ally", "Police"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Card{Traits: tt.traits}
			assert.Equal(t, tt.want, c.TraitList())
		})
	}
}

func TestHasTrait_PipeDelimited(t *testing.T) {
	c := &Card{Traits: "Item|Weapon|Firearm", Slot: "Hand|Arcane", Tags: "hd|hh"}
	assert.True(t, c.HasTrait("weapon"))
	assert.False(t, c.HasTrait("Item|Weapon"))
	assert.Equal(t, []string{"Hand", "Arcane"}, c.SlotList())
	assert.Equal(t, []string{"hd", "hh"}, c.TagList())
}
