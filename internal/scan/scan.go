// Package scan coordinates one sweep: it expands the target range, fans
// probes out across a bounded worker pool, and funnels every completion
// through a single collector that owns the sink.
package scan

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"netsweep/internal/models"
	"netsweep/internal/probe"
)

const (
	// DefaultConcurrency bounds in-flight probes. Unbounded fan-out of one
	// process per host exhausts fd/process limits on a /24 or larger and
	// skews the latency numbers through local contention.
	DefaultConcurrency = 50

	// progressEvery is the completion cadence for progress logging.
	progressEvery = 10
)

// Scanner performs one sweep of a CIDR block.
type Scanner struct {
	prober      models.Prober
	sink        models.Sink
	dialect     probe.Dialect
	concurrency int
	log         zerolog.Logger
}

// New creates a Scanner. A non-positive concurrency falls back to
// DefaultConcurrency.
func New(prober models.Prober, sink models.Sink, dialect probe.Dialect, concurrency int, log zerolog.Logger) *Scanner {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Scanner{
		prober:      prober,
		sink:        sink,
		dialect:     dialect,
		concurrency: concurrency,
		log:         log,
	}
}

// Scan probes every usable host in cidr and persists each outcome. Only
// range enumeration can fail; individual probe, parse and sink errors are
// logged, counted and never abort the sweep. Cancelling ctx stops dispatch
// of new probes while in-flight ones finish under their own timeouts.
func (s *Scanner) Scan(ctx context.Context, cidr string) (models.ScanSummary, error) {
	hosts, err := HostAddresses(cidr)
	if err != nil {
		return models.ScanSummary{}, err
	}

	s.log.Info().
		Str("cidr", cidr).
		Int("hosts", len(hosts)).
		Int("concurrency", s.concurrency).
		Msg("starting sweep")

	work := make(chan string, s.concurrency)
	results := make(chan models.ProbeResult, s.concurrency)

	// Producer: feed addresses until done or cancelled.
	go func() {
		defer close(work)
		for _, addr := range hosts {
			select {
			case work <- addr:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Workers: probe and parse. The parse step is pure, so the only
	// parallel side effect is the probe process itself.
	var wg sync.WaitGroup
	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for addr := range work {
				select {
				case <-ctx.Done():
					return
				default:
				}
				results <- s.probeOne(ctx, addr)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collector: the single sink writer. Counters and inserts live on one
	// goroutine, so concurrent completions never interleave writes.
	summary := models.ScanSummary{Total: len(hosts)}
	for result := range results {
		if insertErr := s.sink.Insert(result); insertErr != nil {
			summary.Dropped++
			s.log.Error().
				Err(insertErr).
				Str("address", result.Address).
				Msg("sink write failed, result dropped")
		}

		summary.Scanned++
		if result.IsActive {
			summary.Active++
		}

		if summary.Scanned%progressEvery == 0 {
			progress := float64(summary.Scanned) / float64(summary.Total) * 100
			s.log.Info().
				Int("scanned", summary.Scanned).
				Int("total", summary.Total).
				Int("active", summary.Active).
				Str("progress", fmt.Sprintf("%.1f%%", progress)).
				Msg("sweep progress")
		}
	}

	summary.SuccessRate = float64(summary.Scanned) / float64(summary.Total) * 100

	s.log.Info().
		Int("total", summary.Total).
		Int("scanned", summary.Scanned).
		Int("active", summary.Active).
		Int("dropped", summary.Dropped).
		Msg("sweep complete")

	return summary, nil
}

// probeOne runs one probe and normalizes its outcome. Probe failure and
// parse misses both degrade to fields on the result, never to errors.
func (s *Scanner) probeOne(ctx context.Context, addr string) models.ProbeResult {
	result := models.NewProbeResult(addr)

	raw, ok, cause := s.prober.Probe(ctx, addr)
	if !ok {
		s.log.Debug().
			Str("address", addr).
			Str("cause", cause.String()).
			Msg("host inactive")
		return result
	}

	result.MarkActive()
	result.LatencyMs, result.TTL = probe.Parse(raw, s.dialect)

	event := s.log.Debug().Str("address", addr)
	if result.LatencyMs != nil {
		event = event.Float64("latency_ms", *result.LatencyMs)
	}
	event.Msg("host active")

	return result
}
