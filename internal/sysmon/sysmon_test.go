package sysmon

import "testing"

func TestDescribe_ReturnsValidRanges(t *testing.T) {
	h := Describe()
	if h.LogicalCPUs < 1 {
		t.Errorf("LogicalCPUs = %d, want at least 1", h.LogicalCPUs)
	}
	if h.MemPercent < 0 || h.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", h.MemPercent)
	}
}

func TestDescribe_MemTotalConsistent(t *testing.T) {
	h := Describe()
	if h.MemTotal == 0 && h.MemPercent != 0 {
		t.Errorf("MemPercent = %f with an unknown MemTotal", h.MemPercent)
	}
}
