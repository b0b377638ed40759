package model

import "time"

// Snapshot holds everything sampled during one tick. It is built fresh
// each cycle, handed to the renderer, and discarded; only temperature
// readings outlive it (they are copied into the history rings).
type Snapshot struct {
	Timestamp time.Time
	CPU       CPUStats
	CPUTemp   Reading
	GPU       GPUStats
	Memory    MemoryStats
	Mounts    []MountUsage
	Net       NetStats
	SysInfo   *SysInfo
	Errors    []string
}

// CPUStats describes processor load for one tick.
type CPUStats struct {
	Usage  Reading // percent; absent on the first tick (deltas need two samples)
	Cores  int
	Load1  float64
	Load5  float64
	Load15 float64
}

// GPUStats describes one GPU as reported by the management tool.
// Detected=false means no compatible tool was found on this host.
type GPUStats struct {
	Detected bool
	Name     string
	Temp     Reading
	Usage    Reading // percent
	MemUsed  Reading // MiB
	MemTotal Reading // MiB
	Power    Reading // watts
}

// MemoryStats describes system memory for one tick.
type MemoryStats struct {
	TotalBytes     uint64
	UsedBytes      uint64
	AvailableBytes uint64
	UsedPct        float64
	SwapTotalBytes uint64
	SwapUsedBytes  uint64
	SwapUsedPct    float64
}

// MountUsage describes one mounted filesystem that survived filtering.
type MountUsage struct {
	Device     string
	MountPoint string
	FSType     string
	TotalBytes uint64
	UsedBytes  uint64
	FreeBytes  uint64
	UsedPct    float64
}

// NetStats holds interface counters summed over physical interfaces.
type NetStats struct {
	Collected bool
	RxBytes   uint64
	TxBytes   uint64
	RxPackets uint64
	TxPackets uint64
}

// SysInfo holds host facts that do not change between ticks.
type SysInfo struct {
	Hostname string
	Kernel   string
	BootTime time.Time
}
