package models

import "testing"

func TestNewProbeResultDefaults(t *testing.T) {
	r := NewProbeResult("10.0.0.1")

	if r.PacketsSent != 1 {
		t.Errorf("PacketsSent = %d, want 1", r.PacketsSent)
	}
	if r.IsActive || r.PacketsReceived != 0 || r.PacketLossPercent != 100.0 {
		t.Errorf("new result must start inactive with full loss, got %+v", r)
	}
	if r.LatencyMs != nil || r.TTL != nil {
		t.Error("new result must start with absent telemetry")
	}
	if r.Timestamp.IsZero() {
		t.Error("timestamp must be set at creation")
	}
}

func TestMarkActive(t *testing.T) {
	r := NewProbeResult("10.0.0.1")
	r.MarkActive()

	if !r.IsActive || r.PacketsReceived != 1 || r.PacketLossPercent != 0.0 {
		t.Errorf("MarkActive left inconsistent state: %+v", r)
	}
}
