package database

import (
	"database/sql"
	"time"

	"netsweep/internal/models"
)

// Insert persists one probe result. LatencyMs and TTL map to NULL columns
// when the probe produced no telemetry.
func (db *DB) Insert(result models.ProbeResult) error {
	query := `
        INSERT INTO ping_results (
            address, packets_sent, packets_received, packet_loss_percent,
            latency_ms, is_active, scan_timestamp, ttl
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := db.Exec(query,
		result.Address,
		result.PacketsSent,
		result.PacketsReceived,
		result.PacketLossPercent,
		result.LatencyMs,
		result.IsActive,
		result.Timestamp,
		result.TTL,
	)
	return err
}

// Summarize aggregates the results recorded within the given window.
func (db *DB) Summarize(window time.Duration) (models.SinkStats, error) {
	query := `
        SELECT
            COUNT(*) as total_scanned,
            SUM(CASE WHEN is_active THEN 1 ELSE 0 END) as active_hosts,
            SUM(CASE WHEN is_active THEN 0 ELSE 1 END) as inactive_hosts,
            AVG(latency_ms) as avg_latency,
            MIN(latency_ms) as min_latency,
            MAX(latency_ms) as max_latency,
            MAX(scan_timestamp) as last_scan
        FROM ping_results
        WHERE scan_timestamp > ?
    `

	cutoff := time.Now().Add(-window)

	var stats models.SinkStats
	var active, inactive sql.NullInt64
	var avgLatency, minLatency, maxLatency sql.NullFloat64
	var lastScan sql.NullTime

	err := db.QueryRow(query, cutoff).Scan(
		&stats.TotalScanned,
		&active,
		&inactive,
		&avgLatency,
		&minLatency,
		&maxLatency,
		&lastScan,
	)
	if err != nil {
		return models.SinkStats{}, err
	}

	stats.ActiveHosts = int(active.Int64)
	stats.InactiveHosts = int(inactive.Int64)
	if avgLatency.Valid {
		stats.AvgLatency = &avgLatency.Float64
	}
	if minLatency.Valid {
		stats.MinLatency = &minLatency.Float64
	}
	if maxLatency.Valid {
		stats.MaxLatency = &maxLatency.Float64
	}
	if lastScan.Valid {
		stats.LastScan = &lastScan.Time
	}

	return stats, nil
}

// Recent returns the results recorded within the window, most recent first.
// The report generator reads per-host rows through this.
func (db *DB) Recent(window time.Duration) ([]models.ProbeResult, error) {
	query := `
        SELECT address, packets_sent, packets_received, packet_loss_percent,
               latency_ms, is_active, scan_timestamp, ttl
        FROM ping_results
        WHERE scan_timestamp > ?
        ORDER BY scan_timestamp DESC
        LIMIT 10000
    `

	rows, err := db.Query(query, time.Now().Add(-window))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.ProbeResult
	for rows.Next() {
		var r models.ProbeResult
		var latency sql.NullFloat64
		var ttl sql.NullInt64

		err := rows.Scan(&r.Address, &r.PacketsSent, &r.PacketsReceived,
			&r.PacketLossPercent, &latency, &r.IsActive, &r.Timestamp, &ttl)
		if err != nil {
			continue
		}
		if latency.Valid {
			r.LatencyMs = &latency.Float64
		}
		if ttl.Valid {
			v := int(ttl.Int64)
			r.TTL = &v
		}
		results = append(results, r)
	}

	return results, rows.Err()
}
