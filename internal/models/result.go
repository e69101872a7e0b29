package models

import "time"

// ProbeResult represents the outcome of probing a single address once.
// LatencyMs and TTL are nil whenever the host did not answer, or when the
// probe output had no recognizable latency/ttl token.
type ProbeResult struct {
	Address           string    `json:"address"`
	PacketsSent       int       `json:"packets_sent"`
	PacketsReceived   int       `json:"packets_received"`
	PacketLossPercent float64   `json:"packet_loss_percent"`
	LatencyMs         *float64  `json:"latency_ms"`
	TTL               *int      `json:"ttl"`
	IsActive          bool      `json:"is_active"`
	Timestamp         time.Time `json:"timestamp"`
}

// NewProbeResult returns an inactive result for addr with the loss fields
// pre-filled for a single unanswered packet.
func NewProbeResult(addr string) ProbeResult {
	return ProbeResult{
		Address:           addr,
		PacketsSent:       1,
		PacketsReceived:   0,
		PacketLossPercent: 100.0,
		IsActive:          false,
		Timestamp:         time.Now(),
	}
}

// MarkActive records a successful reply.
func (r *ProbeResult) MarkActive() {
	r.IsActive = true
	r.PacketsReceived = 1
	r.PacketLossPercent = 0.0
}

// ScanSummary aggregates one complete sweep. It is computed from the stream
// of completions observed by the coordinator, not queried back from storage.
type ScanSummary struct {
	Total       int     `json:"total_hosts"`
	Scanned     int     `json:"scanned_hosts"`
	Active      int     `json:"active_hosts"`
	Dropped     int     `json:"dropped_results"`
	SuccessRate float64 `json:"success_rate"`
}
