package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// maxChartHosts caps the bar count so labels stay legible on wide blocks.
const maxChartHosts = 40

func (g *Generator) generateLatencyChart(outputDir string, window time.Duration) error {
	results, err := g.db.Recent(window)
	if err != nil {
		return err
	}

	// One bar per host with a measured latency. Recent returns newest rows
	// first, so the first occurrence of an address wins.
	seen := make(map[string]bool)
	var bars []chart.Value
	for _, r := range results {
		if !r.IsActive || r.LatencyMs == nil || seen[r.Address] {
			continue
		}
		seen[r.Address] = true
		bars = append(bars, chart.Value{
			Label: r.Address,
			Value: *r.LatencyMs,
		})
	}

	if len(bars) == 0 {
		g.log.Info().Msg("no latency data, skipping chart")
		return nil
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Value > bars[j].Value })
	if len(bars) > maxChartHosts {
		bars = bars[:maxChartHosts]
	}

	graph := chart.BarChart{
		Title: "Per-Host Latency",
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:    1200,
		Height:   400,
		BarWidth: 20,
		YAxis: chart.YAxis{
			Name: "Latency (ms)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
		},
		Bars: bars,
	}

	filename := filepath.Join(outputDir, "latency.png")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}

	return nil
}
