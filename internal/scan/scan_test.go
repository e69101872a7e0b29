package scan

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netsweep/internal/models"
	"netsweep/internal/probe"
)

type probeResponse struct {
	raw   string
	ok    bool
	cause models.FailureCause
}

// fakeProber serves canned responses and tracks the peak number of
// simultaneous in-flight probes. Addresses with no canned response are
// unreachable.
type fakeProber struct {
	responses   map[string]probeResponse
	delay       time.Duration
	calls       atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (p *fakeProber) Probe(_ context.Context, address string) (string, bool, models.FailureCause) {
	cur := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)

	for {
		peak := p.maxInFlight.Load()
		if cur <= peak || p.maxInFlight.CompareAndSwap(peak, cur) {
			break
		}
	}

	p.calls.Add(1)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}

	resp, found := p.responses[address]
	if !found {
		return "", false, models.CauseUnreachable
	}
	return resp.raw, resp.ok, resp.cause
}

// fakeSink records inserts and trips overlapped if two Insert calls ever run
// concurrently.
type fakeSink struct {
	mu         sync.Mutex
	inserts    []models.ProbeResult
	failFor    map[string]bool
	inCall     atomic.Bool
	overlapped atomic.Bool
}

func (s *fakeSink) Insert(result models.ProbeResult) error {
	if !s.inCall.CompareAndSwap(false, true) {
		s.overlapped.Store(true)
	}
	defer s.inCall.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failFor[result.Address] {
		return errors.New("disk full")
	}
	s.inserts = append(s.inserts, result)
	return nil
}

func (s *fakeSink) Summarize(time.Duration) (models.SinkStats, error) {
	return models.SinkStats{}, nil
}

func (s *fakeSink) byAddress() map[string]models.ProbeResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]models.ProbeResult, len(s.inserts))
	for _, r := range s.inserts {
		out[r.Address] = r
	}
	return out
}

func newScanner(p models.Prober, sink models.Sink, concurrency int) *Scanner {
	return New(p, sink, probe.DialectUnix, concurrency, zerolog.Nop())
}

func TestScanEndToEnd(t *testing.T) {
	prober := &fakeProber{responses: map[string]probeResponse{
		"10.0.0.1": {
			raw: "64 bytes from 10.0.0.1: icmp_seq=0 ttl=64 time=5.0 ms",
			ok:  true,
		},
		"10.0.0.2": {cause: models.CauseTimeout},
	}}
	sink := &fakeSink{}

	summary, err := newScanner(prober, sink, 4).Scan(context.Background(), "10.0.0.0/30")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Scanned)
	assert.Equal(t, 1, summary.Active)
	assert.Equal(t, 0, summary.Dropped)
	assert.InDelta(t, 100.0, summary.SuccessRate, 0.001)

	results := sink.byAddress()
	require.Len(t, results, 2)

	active := results["10.0.0.1"]
	assert.True(t, active.IsActive)
	assert.Equal(t, 1, active.PacketsReceived)
	assert.Equal(t, 0.0, active.PacketLossPercent)
	require.NotNil(t, active.LatencyMs)
	assert.Equal(t, 5.0, *active.LatencyMs)
	require.NotNil(t, active.TTL)
	assert.Equal(t, 64, *active.TTL)

	inactive := results["10.0.0.2"]
	assert.False(t, inactive.IsActive)
	assert.Equal(t, 0, inactive.PacketsReceived)
	assert.Equal(t, 100.0, inactive.PacketLossPercent)
	assert.Nil(t, inactive.LatencyMs)
	assert.Nil(t, inactive.TTL)
}

// Every result must satisfy isActive == (packetsReceived == 1) and carry a
// single sent packet regardless of outcome.
func TestScanResultInvariants(t *testing.T) {
	prober := &fakeProber{responses: map[string]probeResponse{
		"192.168.0.1": {raw: "64 bytes from 192.168.0.1: ttl=64 time=1.0 ms", ok: true},
		"192.168.0.3": {raw: "reply with no tokens", ok: true},
	}}
	sink := &fakeSink{}

	_, err := newScanner(prober, sink, 3).Scan(context.Background(), "192.168.0.0/29")
	require.NoError(t, err)

	for addr, r := range sink.byAddress() {
		assert.Equal(t, 1, r.PacketsSent, addr)
		assert.Equal(t, r.IsActive, r.PacketsReceived == 1, addr)
		if r.IsActive {
			assert.Equal(t, 0.0, r.PacketLossPercent, addr)
		} else {
			assert.Equal(t, 100.0, r.PacketLossPercent, addr)
			assert.Nil(t, r.LatencyMs, addr)
			assert.Nil(t, r.TTL, addr)
		}
	}

	// Active with no parseable latency degrades to absent telemetry.
	degraded := sink.byAddress()["192.168.0.3"]
	assert.True(t, degraded.IsActive)
	assert.Nil(t, degraded.LatencyMs)
	assert.Nil(t, degraded.TTL)
}

func TestScanConcurrencyBound(t *testing.T) {
	prober := &fakeProber{delay: 5 * time.Millisecond}
	sink := &fakeSink{}

	// 62 hosts, 5 slots.
	summary, err := newScanner(prober, sink, 5).Scan(context.Background(), "172.16.0.0/26")
	require.NoError(t, err)

	assert.Equal(t, 62, summary.Total)
	assert.Equal(t, 62, summary.Scanned)
	assert.Equal(t, int32(62), prober.calls.Load())
	assert.LessOrEqual(t, prober.maxInFlight.Load(), int32(5))
}

func TestScanSinkSerialization(t *testing.T) {
	responses := make(map[string]probeResponse)
	hosts, err := HostAddresses("172.16.0.0/26")
	require.NoError(t, err)
	for _, h := range hosts {
		responses[h] = probeResponse{
			raw: "64 bytes from " + h + ": ttl=64 time=2.5 ms",
			ok:  true,
		}
	}

	prober := &fakeProber{responses: responses}
	sink := &fakeSink{}

	summary, err := newScanner(prober, sink, 8).Scan(context.Background(), "172.16.0.0/26")
	require.NoError(t, err)

	assert.False(t, sink.overlapped.Load(), "concurrent sink writes detected")
	assert.Equal(t, len(hosts), summary.Scanned)
	assert.Len(t, sink.byAddress(), len(hosts), "expected exactly one insert per address")
}

func TestScanInvalidRange(t *testing.T) {
	prober := &fakeProber{}
	sink := &fakeSink{}

	_, err := newScanner(prober, sink, 4).Scan(context.Background(), "not-a-range")
	require.ErrorIs(t, err, ErrInvalidRange)

	assert.Zero(t, prober.calls.Load(), "no probes may be issued on a fatal range error")
	assert.Empty(t, sink.byAddress(), "no sink writes may happen on a fatal range error")
}

func TestScanSinkWriteFailureDropsAndCounts(t *testing.T) {
	prober := &fakeProber{responses: map[string]probeResponse{
		"10.0.0.1": {raw: "64 bytes from 10.0.0.1: ttl=64 time=1.0 ms", ok: true},
	}}
	sink := &fakeSink{failFor: map[string]bool{"10.0.0.2": true}}

	summary, err := newScanner(prober, sink, 2).Scan(context.Background(), "10.0.0.0/30")
	require.NoError(t, err, "a sink write failure must not abort the sweep")

	assert.Equal(t, 2, summary.Scanned)
	assert.Equal(t, 1, summary.Dropped)
	assert.Len(t, sink.byAddress(), 1)
}

func TestScanCancellation(t *testing.T) {
	prober := &fakeProber{delay: 10 * time.Millisecond}
	sink := &fakeSink{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := newScanner(prober, sink, 4).Scan(ctx, "192.168.1.0/24")
	require.NoError(t, err)

	assert.Equal(t, 254, summary.Total)
	assert.Less(t, summary.Scanned, summary.Total, "cancelled sweep must stop dispatching")
}
