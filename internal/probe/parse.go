package probe

import (
	"regexp"
	"strconv"
)

// Latency and TTL patterns per dialect. The Windows latency pattern also
// matches localized binaries ("tiempo=3ms") and the "time<1ms" form.
var (
	unixLatencyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`time[=<]([0-9.]+)\s*ms`),
		regexp.MustCompile(`round-trip min/avg/max[^=]*= [0-9.]+/([0-9.]+)/`),
	}
	unixTTLPattern = regexp.MustCompile(`ttl=([0-9]+)`)

	windowsLatencyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:time|tiempo)[=<\s]*([0-9.]+)\s*ms`),
	}
	windowsTTLPattern = regexp.MustCompile(`TTL=([0-9]+)`)
)

// Parse extracts the round-trip time and TTL from raw ping output. Either
// field is nil when no pattern matches: an unparseable success degrades to
// absent telemetry, it never becomes a zero measurement or an error.
func Parse(raw string, dialect Dialect) (latencyMs *float64, ttl *int) {
	var latencyPatterns []*regexp.Regexp
	var ttlPattern *regexp.Regexp

	switch dialect {
	case DialectWindows:
		latencyPatterns = windowsLatencyPatterns
		ttlPattern = windowsTTLPattern
	default:
		latencyPatterns = unixLatencyPatterns
		ttlPattern = unixTTLPattern
	}

	for _, pattern := range latencyPatterns {
		matches := pattern.FindStringSubmatch(raw)
		if len(matches) > 1 {
			if rtt, err := strconv.ParseFloat(matches[1], 64); err == nil {
				latencyMs = &rtt
				break
			}
		}
	}

	if matches := ttlPattern.FindStringSubmatch(raw); len(matches) > 1 {
		if v, err := strconv.Atoi(matches[1]); err == nil {
			ttl = &v
		}
	}

	return latencyMs, ttl
}
