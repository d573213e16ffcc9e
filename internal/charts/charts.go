// Package charts renders the chart data of a resolved deck as an interactive
// HTML page.
package charts

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/arcanaland/deckwright/internal/deck"
)

// FactionColors are the display colors of each faction.
var FactionColors = map[string]string{
	"guardian": "#2B80C5",
	"seeker":   "#EC8426",
	"rogue":    "#107116",
	"mystic":   "#4331B9",
	"survivor": "#CC3038",
	"neutral":  "#606060",
	"mythos":   "#3E3E3E",
}

// FactionOrder is the display order of factions.
var FactionOrder = []string{"guardian", "seeker", "rogue", "mystic", "survivor", "neutral", "mythos"}

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title     string // Page title, usually the deck name
	Width     string // Chart width (e.g., "900px")
	Height    string // Chart height (e.g., "500px")
	Theme     string // Chart theme
	Color     string // Bar color
	MaxTraits int    // Traits shown in the trait chart
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:     "900px",
		Height:    "400px",
		Theme:     "light",
		Color:     "#5470C6",
		MaxTraits: 10,
	}
}

func (c ChartConfig) global(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  c.Width,
			Height: c.Height,
			Theme:  c.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	}
}

func (c ChartConfig) bar(title, subtitle, series string, labels []string, values []int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(c.global(title, subtitle)...)
	bar.SetGlobalOptions(charts.WithColorsOpts(opts.Colors{c.Color}))

	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}
	bar.SetXAxis(labels).
		AddSeries(series, data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:     opts.Bool(true),
				Position: "top",
			}),
		)
	return bar
}

// CostCurve charts copies per resource cost; the last bucket includes
// every higher cost.
func CostCurve(rd *deck.ResolvedDeck, cfg ChartConfig) *charts.Bar {
	hist := rd.Charts.CostHistogram
	labels := make([]string, len(hist))
	values := make([]int, len(hist))
	for i, n := range hist {
		labels[i] = strconv.Itoa(i)
		values[i] = n
	}
	labels[deck.MaxCostBucket] += "+"
	return cfg.bar("Cost curve", "Copies by resource cost", "Cards", labels, values)
}

// SkillIcons charts skill icons across the deck.
func SkillIcons(rd *deck.ResolvedDeck, cfg ChartConfig) *charts.Bar {
	icons := rd.Charts.SkillIcons
	return cfg.bar("Skill icons", "", "Icons",
		[]string{"Willpower", "Intellect", "Combat", "Agility", "Wild"},
		[]int{icons.Willpower, icons.Intellect, icons.Combat, icons.Agility, icons.Wild})
}

// Traits charts the most common traits.
func Traits(rd *deck.ResolvedDeck, cfg ChartConfig) *charts.Bar {
	traits := rd.Charts.Traits
	if cfg.MaxTraits > 0 && len(traits) > cfg.MaxTraits {
		traits = traits[:cfg.MaxTraits]
	}
	labels := make([]string, len(traits))
	values := make([]int, len(traits))
	for i, t := range traits {
		labels[i] = t.Trait
		values[i] = t.Count
	}
	return cfg.bar("Traits", "", "Cards", labels, values)
}

// Factions charts copies per faction. Multiclass cards count for each of
// their factions.
func Factions(rd *deck.ResolvedDeck, cfg ChartConfig) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(cfg.global("Factions", "")...)
	pie.SetGlobalOptions(charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}))

	var data []opts.PieData
	for _, f := range FactionOrder {
		n := rd.Charts.Factions[f]
		if n == 0 {
			continue
		}
		data = append(data, opts.PieData{
			Name:      f,
			Value:     n,
			ItemStyle: &opts.ItemStyle{Color: FactionColors[f]},
		})
	}
	pie.AddSeries("Factions", data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c}",
			}),
		)
	return pie
}

// Render writes a page with every deck chart to w.
func Render(rd *deck.ResolvedDeck, cfg ChartConfig, w io.Writer) error {
	page := components.NewPage()
	title := cfg.Title
	if title == "" {
		title = rd.Deck.Name
	}
	page.PageTitle = title
	page.AddCharts(
		CostCurve(rd, cfg),
		SkillIcons(rd, cfg),
		Factions(rd, cfg),
		Traits(rd, cfg),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}

// RenderFile writes the chart page to outputPath.
func RenderFile(rd *deck.ResolvedDeck, cfg ChartConfig, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	return Render(rd, cfg, f)
}
