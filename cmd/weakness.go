package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/deckwright/internal/weakness"
)

var weaknessCmd = &cobra.Command{
	Use:   "weakness [deck file]",
	Short: "Draw a random basic weakness for a deck",
	Long: `Weakness draws a random basic weakness the deck may include, weighted by
the copies left in your collection. The collection comes from --pack flags or
the [collection] table of the config file; without either every pack is owned
once. The same seed and inputs always draw the same weakness.

Examples:
  deckwright weakness jenny.json --pack core=2 --pack eoep=1
  deckwright weakness jenny.json --seed 42`,
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

		var collection weakness.Collection
		if packs, _ := cmd.Flags().GetStringToInt("pack"); len(packs) > 0 {
			collection = weakness.Collection(packs)
		} else if len(env.cfg.Collection) > 0 {
			collection = weakness.Collection(env.cfg.Collection)
		}

		seed, _ := cmd.Flags().GetUint64("seed")
		if !cmd.Flags().Changed("seed") {
			if seed, err = weakness.NewSeed(); err != nil {
				return err
			}
		}

		code, err := weakness.RandomBasicWeaknessForDeck(env.meta, env.lookup, rd, collection, weakness.NewRand(seed))
		if err != nil {
			return err
		}

		c := env.meta.Cards[code]
		fmt.Printf("%s %s\n", color.RedString("%s", c.DisplayName()), c.Code)
		fmt.Println(color.HiBlackString("seed %d", seed))
		return nil
	},
}

func init() {
	weaknessCmd.Flags().StringToInt("pack", nil, "Owned packs as code=count")
	weaknessCmd.Flags().Uint64("seed", 0, "Random seed")
}
