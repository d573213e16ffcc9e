package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/deckwright/internal/deck"
	"github.com/arcanaland/deckwright/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [deck files...]",
	Short: "Validate deck files against deckbuilding rules",
	Long: `Validate resolves each deck file against the card database and checks it
against the investigator's deckbuilding rules: deck size, card access, deck
option limits, required cards, experience and copy limits.

Deck files may be JSON, YAML or TOML.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		memo := deck.NewMemo(env.deps(), env.collator)

		failed := 0
		for i, path := range args {
			if i > 0 {
				fmt.Println()
			}
			d, err := env.loadDeck(path)
			if err != nil {
				return err
			}
			rd, err := memo.Resolve(d)
			if err != nil {
				return fmt.Errorf("error resolving deck %s: %w", path, err)
			}

			results := validator.ValidateDeck(rd, env.meta, env.lookup)
			printResults(path, rd, results)
			if !results.Valid() {
				failed++
			}
		}

		if failed > 0 {
			return fmt.Errorf("validation failed for %d of %d decks", failed, len(args))
		}
		return nil
	},
}

func printResults(path string, rd *deck.ResolvedDeck, results validator.Result) {
	name := rd.Deck.Name
	if name == "" {
		name = path
	}

	fmt.Println("Validation Results:")
	fmt.Println("-------------------")

	if results.Valid() {
		fmt.Printf("✅ Deck '%s' is valid.\n", name)
	} else {
		fmt.Printf("❌ Deck '%s' has %d problems:\n", name, len(results.Problems))
		for i, p := range results.Problems {
			fmt.Printf("%d. %s %s\n", i+1, color.RedString("%s", p.Type), describeProblem(p))
		}
	}

	if len(results.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for i, warn := range results.Warnings {
			fmt.Printf("%d. %s\n", i+1, color.YellowString("%s", warn))
		}
	}
}

func describeProblem(p validator.Problem) string {
	var b strings.Builder
	b.WriteString(p.Message)
	if len(p.Cards) > 0 {
		b.WriteString(color.HiBlackString(" [%s]", strings.Join(p.Cards, ", ")))
	}
	return b.String()
}
