package resolver

import (
	"slices"
	"strconv"
	"strings"

	"github.com/arcanaland/deckwright/internal/card"
)

const (
	entrySeparator     = ","
	fieldSeparator     = "|"
	selectionSeparator = "^"
)

// ParseCustomizations decodes a customization string of the form
// "index|xp[|sel^sel],index|xp". Malformed entries are skipped.
func ParseCustomizations(s string) map[int]card.Customization {
	out := make(map[int]card.Customization)
	for _, entry := range strings.Split(s, entrySeparator) {
		fields := strings.Split(strings.TrimSpace(entry), fieldSeparator)
		if len(fields) < 2 {
			continue
		}
		index, err := strconv.Atoi(fields[0])
		if err != nil || index < 0 {
			continue
		}
		xp, err := strconv.Atoi(fields[1])
		if err != nil || xp < 0 {
			continue
		}
		cus := card.Customization{Index: index, XPSpent: xp}
		if len(fields) > 2 && fields[2] != "" {
			cus.Selections = strings.Split(fields[2], selectionSeparator)
		}
		out[index] = cus
	}
	return out
}

// EncodeCustomizations is the inverse of ParseCustomizations, ordered by index.
func EncodeCustomizations(cus map[int]card.Customization) string {
	indexes := make([]int, 0, len(cus))
	for i := range cus {
		indexes = append(indexes, i)
	}
	slices.Sort(indexes)

	entries := make([]string, 0, len(indexes))
	for _, i := range indexes {
		c := cus[i]
		entry := strconv.Itoa(i) + fieldSeparator + strconv.Itoa(c.XPSpent)
		if len(c.Selections) > 0 {
			entry += fieldSeparator + strings.Join(c.Selections, selectionSeparator)
		}
		entries = append(entries, entry)
	}
	return strings.Join(entries, entrySeparator)
}

// applyCustomizations applies unlocked options in the order they are listed
// on the card.
func applyCustomizations(c card.Card, cus map[int]card.Customization) card.Card {
	c.Customizations = cus
	c.CustomizationXP = 0
	for _, entry := range cus {
		if entry.Index < len(c.CustomizationOptions) {
			c.CustomizationXP += entry.XPSpent
		}
	}

	lines := splitLines(c.Text)
	for i, option := range c.CustomizationOptions {
		entry, ok := cus[i]
		if !ok || !entry.Unlocked(option) {
			continue
		}

		if option.HealthChange != 0 {
			c.Health = addInt(c.Health, option.HealthChange)
		}
		if option.SanityChange != 0 {
			c.Sanity = addInt(c.Sanity, option.SanityChange)
		}
		if option.CostChange != 0 && c.Cost != nil && *c.Cost >= 0 {
			c.Cost = addInt(c.Cost, option.CostChange)
		}
		if option.RealSlot != "" {
			c.Slot = option.RealSlot
		}
		if option.RealTraits != "" {
			c.Traits = option.RealTraits
		}
		if option.DeckLimit != nil {
			limit := *option.DeckLimit
			c.DeckLimit = &limit
		}

		switch option.Choice {
		case card.ChoiceTrait:
			c.Traits = appendList(c.Traits, entry.Selections)
		case card.ChoiceRemoveSlot:
			c.Slot = removeSlot(c.Slot, entry.Selections)
		}

		if option.TextEdit != "" {
			lines = editText(lines, option)
		}
	}
	c.Text = strings.Join(lines, "\n")
	return c
}

func editText(lines []string, option card.CustomizationOption) []string {
	pos := option.Position
	switch option.TextChange {
	case card.TextReplace:
		if pos >= 0 && pos < len(lines) {
			lines = slices.Clone(lines)
			lines[pos] = option.TextEdit
			return lines
		}
		return append(slices.Clone(lines), option.TextEdit)
	case card.TextInsert:
		at := pos + 1
		if at < 0 || at > len(lines) {
			at = len(lines)
		}
		return slices.Insert(slices.Clone(lines), at, option.TextEdit)
	default:
		return append(slices.Clone(lines), option.TextEdit)
	}
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func addInt(v *int, delta int) *int {
	n := delta
	if v != nil {
		n += *v
	}
	if n < 0 {
		n = 0
	}
	return &n
}

func appendList(list string, items []string) string {
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if list != "" && !strings.HasSuffix(strings.TrimSpace(list), ".") {
			list += "."
		}
		if list != "" {
			list = strings.TrimSpace(list) + " "
		}
		list += item + "."
	}
	return list
}

func removeSlot(slot string, selections []string) string {
	if len(selections) == 0 {
		return slot
	}
	index, err := strconv.Atoi(selections[0])
	if err != nil {
		return slot
	}
	parts := (&card.Card{Slot: slot}).SlotList()
	if index < 0 || index >= len(parts) {
		return slot
	}
	parts = slices.Delete(parts, index, index+1)
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ". ") + "."
}
