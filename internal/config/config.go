// Package config holds the sweep configuration assembled from CLI flags.
package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for one sweep.
type Config struct {
	CIDR          string
	Concurrency   int
	Timeout       time.Duration
	DatabasePath  string
	Dialect       string
	ReportDir     string
	SummaryWindow time.Duration
	Retention     time.Duration
	LogLevel      string
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.CIDR == "" {
		return fmt.Errorf("a target CIDR block must be specified")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.SummaryWindow <= 0 {
		return fmt.Errorf("summary window must be positive")
	}
	if c.Retention < 0 {
		return fmt.Errorf("retention cannot be negative")
	}
	return nil
}
