package probe

import (
	"fmt"
	"runtime"
)

// Dialect identifies the text format a ping binary emits. It is a
// configuration input, never sniffed from the output itself, so the parser
// stays testable with literal fixtures for each platform.
type Dialect int

const (
	// DialectUnix covers Linux, macOS and the BSDs: "time=12.3 ms", "ttl=64".
	DialectUnix Dialect = iota
	// DialectWindows covers Windows ping.exe, including localized builds
	// that print "tiempo=12ms": "time=12ms", "TTL=64".
	DialectWindows
)

func (d Dialect) String() string {
	switch d {
	case DialectUnix:
		return "unix"
	case DialectWindows:
		return "windows"
	default:
		return "unknown"
	}
}

// ParseDialect maps a flag value to a Dialect. "auto" picks based on the
// runtime platform.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "", "auto":
		return DefaultDialect(), nil
	case "unix":
		return DialectUnix, nil
	case "windows":
		return DialectWindows, nil
	default:
		return DialectUnix, fmt.Errorf("unknown dialect %q (want auto, unix or windows)", s)
	}
}

// DefaultDialect returns the dialect of the local ping binary.
func DefaultDialect() Dialect {
	if runtime.GOOS == "windows" {
		return DialectWindows
	}
	return DialectUnix
}
