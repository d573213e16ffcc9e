package cmd

import (
	"github.com/spf13/cobra"
)

var (
	dataDirFlag string
	tabooFlag   int
	localeFlag  string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "deckwright",
	Short: "Tool for resolving and validating card game decks",
	Long: `Deckwright is a command-line tool for resolving, validating and inspecting
investigator decks against a local card database.

The card database directory holds cards.json and its companion files. It is
read from the config file (XDG_CONFIG_HOME/deckwright/config.toml), the
DECKWRIGHT_DATA_DIR environment variable or the --data-dir flag.`,
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Card database directory")
	RootCmd.PersistentFlags().IntVar(&tabooFlag, "taboo", 0, "Taboo set id applied to decks without one")
	RootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "Locale used to sort card names")

	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(chartCmd)
	RootCmd.AddCommand(cardCmd)
	RootCmd.AddCommand(accessCmd)
	RootCmd.AddCommand(weaknessCmd)
	RootCmd.AddCommand(configCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
