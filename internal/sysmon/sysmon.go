// Package sysmon reports the host resources shown in the execution banner.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Host describes the machine the evaluations run on.
type Host struct {
	LogicalCPUs int
	// MemTotal is in bytes, 0 when unknown.
	MemTotal   uint64
	MemPercent float64 // 0.0 .. 100.0
}

// Describe collects a Host snapshot. Fields gopsutil cannot read keep their
// zero value, except LogicalCPUs which falls back to runtime.NumCPU.
func Describe() Host {
	h := Host{LogicalCPUs: runtime.NumCPU()}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		h.LogicalCPUs = n
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		h.MemTotal = vmem.Total
		h.MemPercent = vmem.UsedPercent
	}
	return h
}
