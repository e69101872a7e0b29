package models

import "time"

// SinkStats is the aggregate view the sink computes over a recent time window.
// Latency aggregates are nil when no persisted row carries a latency.
type SinkStats struct {
	TotalScanned  int        `json:"total_scanned"`
	ActiveHosts   int        `json:"active_hosts"`
	InactiveHosts int        `json:"inactive_hosts"`
	AvgLatency    *float64   `json:"avg_latency"`
	MinLatency    *float64   `json:"min_latency"`
	MaxLatency    *float64   `json:"max_latency"`
	LastScan      *time.Time `json:"last_scan"`
}
