package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/deckwright/internal/card"
	"github.com/arcanaland/deckwright/internal/filter"
	"github.com/arcanaland/deckwright/internal/resolver"
)

var accessCmd = &cobra.Command{
	Use:   "access [investigator code]",
	Short: "List the cards an investigator can include",
	Long: `Access lists every player card the investigator's deckbuilding options admit,
optionally narrowed by type, faction and level. With --deck, the deck's
selections, card pool and sealed list apply as well.

Examples:
  deckwright access 01001 --type asset --level 0-0
  deckwright access 01001 --deck roland.json --faction seeker`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		deckPath, _ := cmd.Flags().GetString("deck")
		if len(args) == 0 && deckPath == "" {
			return fmt.Errorf("an investigator code or --deck is required")
		}

		var investigator *card.Card
		opts := filter.AccessOptions{Metadata: env.meta, Lookup: env.lookup}
		tabooSetID := env.cfg.TabooSetID()
		if deckPath != "" {
			rd, err := env.resolveDeck(deckPath)
			if err != nil {
				return err
			}
			investigator = rd.InvestigatorBack.Card
			opts = rd.AccessOptions(env.meta, env.lookup, false)
			tabooSetID = rd.TabooSetID
		} else {
			investigator, err = resolver.ResolveCard(env.meta, args[0], tabooSetID, nil)
			if err != nil {
				return fmt.Errorf("error resolving investigator: %w", err)
			}
		}
		if investigator.TypeCode != card.TypeInvestigator {
			return fmt.Errorf("%s is not an investigator", investigator.Code)
		}

		filters := []filter.Filter{filter.NewCache().DeckAccess(investigator, opts)}
		if types, _ := cmd.Flags().GetStringSlice("type"); len(types) > 0 {
			filters = append(filters, filter.Type(types...))
		}
		if factions, _ := cmd.Flags().GetStringSlice("faction"); len(factions) > 0 {
			filters = append(filters, filter.Faction(factions...))
		}
		if level, _ := cmd.Flags().GetString("level"); level != "" {
			r, err := parseLevelRange(level)
			if err != nil {
				return err
			}
			filters = append(filters, filter.Level(r))
		}

		var cards []*card.Card
		for _, code := range env.meta.SortedCodes() {
			c, err := resolver.ResolveCard(env.meta, code, tabooSetID, nil)
			if err != nil || c.TypeCode == card.TypeInvestigator {
				continue
			}
			cards = append(cards, c)
		}
		cards = filter.Apply(cards, filter.And(filters...))
		resolver.SortByName(cards, env.collator)

		for _, c := range cards {
			line := c.DisplayName()
			if level, ok := c.Level(); ok && level > 0 {
				line += " (" + strconv.Itoa(level) + ")"
			}
			fmt.Printf("%s %s %s\n", c.Code, line, color.HiBlackString("%s", strings.Join(c.Factions(), "/")))
		}
		fmt.Printf("\n%d cards\n", len(cards))
		return nil
	},
}

func init() {
	accessCmd.Flags().StringSlice("type", nil, "Card types to list (asset, event, skill)")
	accessCmd.Flags().StringSlice("faction", nil, "Factions to list")
	accessCmd.Flags().String("level", "", "Level range, e.g. 0-2 or 3")
	accessCmd.Flags().StringP("deck", "d", "", "Deck file whose selections and card pool apply")
}

// parseLevelRange parses "min-max" or a single level
func parseLevelRange(s string) (card.LevelRange, error) {
	lo, hi, found := strings.Cut(s, "-")
	if !found {
		hi = lo
	}
	lower, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return card.LevelRange{}, fmt.Errorf("invalid level range: %s", s)
	}
	upper, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil || upper < lower {
		return card.LevelRange{}, fmt.Errorf("invalid level range: %s", s)
	}
	return card.LevelRange{Min: lower, Max: upper}, nil
}
