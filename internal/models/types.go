package models

import (
	"context"
	"time"
)

// Sink defines the durable storage the sweep writes to. Insert must be
// called from a single goroutine at a time; the coordinator serializes all
// writes through one collector.
type Sink interface {
	Insert(result ProbeResult) error
	Summarize(window time.Duration) (SinkStats, error)
}

// Prober issues a single reachability probe against one address.
type Prober interface {
	Probe(ctx context.Context, address string) (raw string, ok bool, cause FailureCause)
}

// FailureCause classifies why a probe produced no reply. It is logged by the
// caller; it never aborts a sweep.
type FailureCause int

const (
	CauseNone FailureCause = iota
	CauseUnreachable
	CauseTimeout
	CauseLaunchError
)

func (c FailureCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseUnreachable:
		return "unreachable"
	case CauseTimeout:
		return "timeout"
	case CauseLaunchError:
		return "launch_error"
	default:
		return "unknown"
	}
}
