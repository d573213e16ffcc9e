package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/deckwright/internal/charts"
)

var chartCmd = &cobra.Command{
	Use:   "chart [deck file]",
	Short: "Render deck charts as an HTML page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		rd, err := env.resolveDeck(args[0])
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		cfg := charts.DefaultChartConfig()
		cfg.Title, _ = cmd.Flags().GetString("title")
		cfg.Theme, _ = cmd.Flags().GetString("theme")

		if err := charts.RenderFile(rd, cfg, out); err != nil {
			return err
		}
		fmt.Printf("Charts written to %s\n", out)
		return nil
	},
}

func init() {
	chartCmd.Flags().StringP("out", "o", "deck.html", "Output HTML file")
	chartCmd.Flags().String("title", "", "Page title (defaults to the deck name)")
	chartCmd.Flags().String("theme", "light", "Chart theme")
}
