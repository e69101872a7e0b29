// Package report writes post-sweep artifacts: a text summary and a latency
// chart rendered from the persisted results.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"netsweep/internal/database"
)

// Generator creates static reports from a sweep's stored results.
type Generator struct {
	db  *database.DB
	log zerolog.Logger
}

// NewGenerator creates a new report generator.
func NewGenerator(db *database.DB, log zerolog.Logger) *Generator {
	return &Generator{db: db, log: log}
}

// Generate writes a timestamped report directory under outputDir covering
// results from the given window. Individual artifact failures are logged and
// do not fail the run.
func (g *Generator) Generate(outputDir string, window time.Duration) (string, error) {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	reportDir := filepath.Join(outputDir, fmt.Sprintf("sweep_report_%s", timestamp))
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := g.generateTextReport(reportDir, window); err != nil {
		g.log.Error().Err(err).Msg("failed to generate text report")
	}

	if err := g.generateLatencyChart(reportDir, window); err != nil {
		g.log.Error().Err(err).Msg("failed to generate latency chart")
	}

	g.log.Info().Str("dir", reportDir).Msg("report generated")

	return reportDir, nil
}
