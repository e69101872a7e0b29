package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func (g *Generator) generateTextReport(outputDir string, window time.Duration) error {
	filename := filepath.Join(outputDir, "summary.txt")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "Network Sweep Report\n")
	fmt.Fprintf(file, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "Period: Last %s\n\n", window)
	fmt.Fprintln(file, strings.Repeat("=", 60))

	stats, err := g.db.Summarize(window)
	if err != nil {
		return err
	}

	fmt.Fprintln(file, "\nOVERALL STATISTICS")
	fmt.Fprintf(file, "  Hosts Scanned: %d\n", stats.TotalScanned)
	fmt.Fprintf(file, "  Active: %d\n", stats.ActiveHosts)
	fmt.Fprintf(file, "  Inactive: %d\n", stats.InactiveHosts)

	if stats.AvgLatency != nil {
		fmt.Fprintf(file, "  Average Latency: %.2f ms\n", *stats.AvgLatency)
		fmt.Fprintf(file, "  Min Latency: %.2f ms\n", *stats.MinLatency)
		fmt.Fprintf(file, "  Max Latency: %.2f ms\n", *stats.MaxLatency)
	} else {
		fmt.Fprintln(file, "  Latency: no data")
	}

	if stats.LastScan != nil {
		fmt.Fprintf(file, "  Last Scan: %s\n", stats.LastScan.Format("2006-01-02 15:04:05"))
	}

	fmt.Fprintln(file, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(file, "\nACTIVE HOSTS")

	results, err := g.db.Recent(window)
	if err != nil {
		return err
	}

	activeCount := 0
	for _, r := range results {
		if !r.IsActive {
			continue
		}
		activeCount++

		fmt.Fprintf(file, "  %s", r.Address)
		if r.LatencyMs != nil {
			fmt.Fprintf(file, "  %.2f ms", *r.LatencyMs)
		}
		if r.TTL != nil {
			fmt.Fprintf(file, "  ttl=%d", *r.TTL)
		}
		fmt.Fprintln(file)
	}

	if activeCount == 0 {
		fmt.Fprintln(file, "  No active hosts found.")
	}

	return nil
}
