// Package probe issues single-packet ping probes and parses their output.
package probe

import (
	"context"
	"errors"
	"os/exec"
	"strconv"
	"time"

	"netsweep/internal/models"
)

const (
	// DefaultTimeout is the network timeout handed to the ping binary.
	DefaultTimeout = 3 * time.Second
	// DefaultKillCeiling bounds the whole invocation so a hung ping process
	// cannot hold a concurrency slot forever.
	DefaultKillCeiling = 10 * time.Second
)

// Executor runs one external ping per probe. It holds no shared state and is
// safe for concurrent use.
type Executor struct {
	Timeout     time.Duration
	KillCeiling time.Duration
	Dialect     Dialect
}

// NewExecutor creates an Executor with the default timeouts for the given
// dialect.
func NewExecutor(dialect Dialect) *Executor {
	return &Executor{
		Timeout:     DefaultTimeout,
		KillCeiling: DefaultKillCeiling,
		Dialect:     dialect,
	}
}

// Probe sends exactly one ping to address. ok is true only when the binary
// reported a reply; every failure mode collapses to ok=false plus a cause for
// the caller to log.
func (e *Executor) Probe(ctx context.Context, address string) (string, bool, models.FailureCause) {
	ceiling := e.KillCeiling
	if e.Timeout >= ceiling {
		ceiling = e.Timeout + 2*time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, ceiling)
	defer cancel()

	var cmd *exec.Cmd
	if e.Dialect == DialectWindows {
		cmd = exec.CommandContext(ctx, "ping", "-n", "1", "-w", strconv.Itoa(int(e.Timeout.Milliseconds())), address)
	} else {
		cmd = exec.CommandContext(ctx, "ping", "-c", "1", "-W", strconv.Itoa(int(e.Timeout.Seconds())), address)
	}

	output, err := cmd.CombinedOutput()
	if err == nil {
		return string(output), true, models.CauseNone
	}

	if ctx.Err() != nil {
		return "", false, models.CauseTimeout
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ping ran but got no reply within its own -W/-w window.
		return "", false, models.CauseUnreachable
	}

	return "", false, models.CauseLaunchError
}
