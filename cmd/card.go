package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/deckwright/internal/card"
	"github.com/arcanaland/deckwright/internal/resolver"
)

var cardCmd = &cobra.Command{
	Use:   "card [code]",
	Short: "Display a resolved card and its related cards",
	Long: `Card resolves one card with the configured taboo set and optional
customizations applied, then lists its related cards.

Customizations use the deck meta encoding "index|xp[|choice^choice],...".

Examples:
  deckwright card 01016
  deckwright card 09022 --customizations "0|1,3|2"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		code := args[0]
		req := resolver.Request{
			Code:          code,
			TabooSetID:    env.cfg.TabooSetID(),
			WithRelations: true,
		}
		if s, _ := cmd.Flags().GetString("customizations"); s != "" {
			req.Customizations = resolver.Customizations{code: resolver.ParseCustomizations(s)}
		}

		c, err := resolver.ResolveCardWithRelations(env.meta, env.lookup, env.collator, req)
		if err != nil {
			return fmt.Errorf("error resolving card: %w", err)
		}
		displayCard(c)
		return nil
	},
}

func init() {
	cardCmd.Flags().String("customizations", "", "Customization choices for customizable cards")
}

func displayCard(cr *resolver.CardWithRelations) {
	c := cr.Card
	fmt.Println()
	fmt.Println(label("Card:    ") + value(c.DisplayName()))
	fmt.Println(label("Code:    ") + value(c.Code))
	fmt.Println(label("Type:    ") + value(strings.Join(nonEmpty(c.TypeCode, c.SubtypeCode), " · ")))
	fmt.Println(label("Faction: ") + value(strings.Join(c.Factions(), " / ")))
	if level, ok := c.Level(); ok {
		fmt.Println(label("Level:   ") + value(strconv.Itoa(level)))
	}
	if c.XP != nil {
		fmt.Println(label("XP cost: ") + value(strconv.Itoa(c.XPCost()+c.CustomizationXP)))
	}
	if c.Traits != "" {
		fmt.Println(label("Traits:  ") + value(c.Traits))
	}
	fmt.Println(label("Limit:   ") + value(strconv.Itoa(c.Limit())))
	if c.Text != "" {
		fmt.Println()
		fmt.Println(c.Text)
	}

	if cr.Relations == nil {
		fmt.Println()
		return
	}
	r := cr.Relations
	printRelation("Base", one(r.Base))
	printRelation("Parallel", one(r.Parallel))
	printRelation("Restricted to", one(r.RestrictedTo))
	printRelation("Required cards", r.RequiredCards)
	printRelation("Advanced", r.Advanced)
	printRelation("Replacement", r.Replacement)
	printRelation("Bonded", r.Bonded)
	printRelation("Bound to", r.Bound)
	printRelation("Other signatures", r.OtherSignatures)
	printRelation("Parallel cards", r.ParallelCards)
	printRelation("Other levels", r.Level)
	printRelation("Reprints", r.Duplicates)
	printRelation("Other versions", r.OtherVersions)
	fmt.Println()
}

func printRelation(title string, cards []*card.Card) {
	if len(cards) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(label(title))
	for _, c := range cards {
		fmt.Printf("  %s %s\n", c.DisplayName(), c.Code)
	}
}

func one(c *card.Card) []*card.Card {
	if c == nil {
		return nil
	}
	return []*card.Card{c}
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
