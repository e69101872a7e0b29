package database

import (
	"fmt"
	"time"
)

// Prune deletes results older than the retention period and returns the
// number of removed rows.
func (db *DB) Prune(retention time.Duration) (int64, error) {
	res, err := db.Exec(
		`DELETE FROM ping_results WHERE scan_timestamp < ?`,
		time.Now().Add(-retention),
	)
	if err != nil {
		return 0, fmt.Errorf("prune failed: %w", err)
	}

	return res.RowsAffected()
}
