package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/deckwright/internal/card"
	"github.com/arcanaland/deckwright/internal/charts"
	"github.com/arcanaland/deckwright/internal/deck"
	"github.com/arcanaland/deckwright/internal/resolver"
	"github.com/arcanaland/deckwright/internal/validator"
)

var showCmd = &cobra.Command{
	Use:   "show [deck file]",
	Short: "Display a resolved deck with terminal charts",
	Long: `Show resolves a deck file and prints the investigator, deck size, experience,
every slot list and charts of the cost curve, factions, skill icons and traits.

Examples:
  deckwright show roland.json
  deckwright show --taboo 8 ./decks/jenny.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		rd, err := env.resolveDeck(args[0])
		if err != nil {
			return err
		}

		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || width <= 0 {
			width = 80 // Default if we can't get terminal width
		}

		displayDeck(rd, env.collator, width)
		return nil
	},
}

var (
	label = color.New(color.FgCyan).SprintFunc()
	value = color.New(color.FgHiWhite).SprintFunc()
)

// displayDeck prints the deck summary followed by its charts
func displayDeck(rd *deck.ResolvedDeck, collator resolver.Collator, width int) {
	fmt.Println()
	fmt.Println(label("Deck:         ") + value(rd.Deck.Name))

	front, back := rd.InvestigatorFront.Card, rd.InvestigatorBack.Card
	investigator := front.DisplayName()
	if back.Code != front.Code {
		investigator += fmt.Sprintf(" (back: %s)", back.Code)
	}
	fmt.Println(label("Investigator: ") + value(investigator))

	if rd.TabooSetID != nil {
		fmt.Println(label("Taboo:        ") + value(strconv.Itoa(*rd.TabooSetID)))
	}
	fmt.Println(label("Cards:        ") + value(fmt.Sprintf("%d / %d (%d total)",
		rd.DeckSize, validator.RequiredDeckSize(rd), rd.DeckSizeTotal)))
	fmt.Println(label("Experience:   ") + value(strconv.Itoa(rd.XPRequired)))

	mainCards := make(map[string]*card.Card, len(rd.Cards.Slots))
	for code, c := range rd.Cards.Slots {
		mainCards[code] = c.Card
	}
	for _, group := range []struct {
		title string
		types []string
	}{
		{"Assets", []string{card.TypeAsset}},
		{"Events", []string{card.TypeEvent}},
		{"Skills", []string{card.TypeSkill}},
	} {
		printSlots(group.title, mainCards, rd.Slots, collator, func(c *card.Card) bool {
			return contains(group.types, c.TypeCode)
		})
	}
	printSlots("Other", mainCards, rd.Slots, collator, func(c *card.Card) bool {
		return c.TypeCode != card.TypeAsset && c.TypeCode != card.TypeEvent && c.TypeCode != card.TypeSkill
	})
	printSlots("Extra deck", rd.Cards.ExtraSlots, rd.ExtraSlots, collator, nil)
	printSlots("Side deck", rd.Cards.SideSlots, rd.SideSlots, collator, nil)
	printSlots("Bonded", rd.Cards.BondedSlots, rd.BondedSlots, collator, nil)
	printSlots("Exiled", rd.Cards.ExileSlots, rd.ExileSlots, collator, nil)

	if len(rd.Omitted) > 0 {
		fmt.Println()
		fmt.Println(color.YellowString("Unknown cards: %s", strings.Join(rd.Omitted, ", ")))
	}

	printCharts(rd.Charts, width)
	fmt.Println()
}

// printSlots prints one slot list sorted by name
func printSlots(title string, cards map[string]*card.Card, quantities deck.Slots, collator resolver.Collator, keep func(*card.Card) bool) {
	var list []*card.Card
	total := 0
	for code, c := range cards {
		if quantities[code] <= 0 || (keep != nil && !keep(c)) {
			continue
		}
		list = append(list, c)
		total += quantities[code]
	}
	if len(list) == 0 {
		return
	}
	resolver.SortByName(list, collator)

	fmt.Println()
	fmt.Println(label(fmt.Sprintf("%s (%d)", title, total)))
	for _, c := range list {
		line := fmt.Sprintf("  %dx %s", quantities[c.Code], c.DisplayName())
		if level, ok := c.Level(); ok && level > 0 {
			line += " " + strings.Repeat("•", level)
		}
		fmt.Println(line + color.HiBlackString(" %s", c.Code))
	}
}

// printCharts renders the deck charts as horizontal bars fitted to width
func printCharts(ch deck.Charts, width int) {
	const labelWidth = 12
	barWidth := width - labelWidth - 8
	if barWidth < 10 {
		barWidth = 10
	}

	fmt.Println()
	fmt.Println(label("Cost curve"))
	costMax := 0
	for _, n := range ch.CostHistogram {
		costMax = max(costMax, n)
	}
	for i, n := range ch.CostHistogram {
		name := strconv.Itoa(i)
		if i == deck.MaxCostBucket {
			name += "+"
		}
		printBar(name, n, costMax, barWidth, "")
	}

	fmt.Println()
	fmt.Println(label("Factions"))
	factionMax := 0
	for _, n := range ch.Factions {
		factionMax = max(factionMax, n)
	}
	for _, f := range charts.FactionOrder {
		if n := ch.Factions[f]; n > 0 {
			printBar(f, n, factionMax, barWidth, charts.FactionColors[f])
		}
	}

	icons := []struct {
		name string
		n    int
	}{
		{"Willpower", ch.SkillIcons.Willpower},
		{"Intellect", ch.SkillIcons.Intellect},
		{"Combat", ch.SkillIcons.Combat},
		{"Agility", ch.SkillIcons.Agility},
		{"Wild", ch.SkillIcons.Wild},
	}
	fmt.Println()
	fmt.Println(label("Skill icons"))
	iconMax := 0
	for _, i := range icons {
		iconMax = max(iconMax, i.n)
	}
	for _, i := range icons {
		printBar(i.name, i.n, iconMax, barWidth, "")
	}

	if len(ch.Traits) > 0 {
		fmt.Println()
		fmt.Println(label("Traits"))
		traits := ch.Traits
		if len(traits) > 8 {
			traits = traits[:8]
		}
		for _, t := range traits {
			printBar(t.Trait, t.Count, traits[0].Count, barWidth, "")
		}
	}
}

func printBar(name string, n, total, width int, hex string) {
	size := 0
	if total > 0 {
		size = n * width / total
	}
	if len(name) > 11 {
		name = name[:11]
	}
	fmt.Printf("  %-11s %s %d\n", name, colorBar(strings.Repeat("█", size), hex), n)
}

// colorBar paints bar in a 24-bit foreground color given as a hex string
func colorBar(bar, hex string) string {
	if hex == "" || color.NoColor {
		return bar
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return bar
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, b, bar)
}

// contains checks if a string is in a slice
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
