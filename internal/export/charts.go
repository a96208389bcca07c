package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pokebinder/pokebinder/internal/binder"
)

// ChartConfig holds presentation options for exported charts.
type ChartConfig struct {
	Title    string
	Subtitle string
	Width    string
	Height   string
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig(title string) ChartConfig {
	return ChartConfig{
		Title:  title,
		Width:  "900px",
		Height: "500px",
	}
}

// WriteOccupancyChart renders an interactive HTML bar chart of filled slots
// per page for a binder layout.
func WriteOccupancyChart(w io.Writer, layout binder.Layout, config ChartConfig) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
	)

	size := layout.PageSize()
	pages := make([]string, 0, layout.TotalPages())
	filled := make([]opts.BarData, 0, layout.TotalPages())
	for page := 1; page <= layout.TotalPages(); page++ {
		count := 0
		start := (page - 1) * size
		for i := start; i < start+size && i < len(layout.Positions); i++ {
			if !layout.Positions[i].Empty {
				count++
			}
		}
		pages = append(pages, fmt.Sprintf("Page %d", page))
		filled = append(filled, opts.BarData{Value: count})
	}

	bar.SetXAxis(pages).AddSeries("Filled slots", filled)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render occupancy chart: %w", err)
	}
	return nil
}
