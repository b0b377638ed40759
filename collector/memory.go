package collector

import (
	"context"
	"fmt"

	"github.com/glasswing-io/sysdash/model"
	"github.com/glasswing-io/sysdash/util"
)

// MemorySource samples system memory from /proc/meminfo.
type MemorySource struct {
	readLines func(path string) ([]string, error)
}

// NewMemorySource builds the source. readLines is injectable for tests;
// nil uses the real proc filesystem.
func NewMemorySource(readLines func(string) ([]string, error)) *MemorySource {
	if readLines == nil {
		readLines = util.ReadFileLines
	}
	return &MemorySource{readLines: readLines}
}

func (m *MemorySource) Name() string { return "memory" }

func (m *MemorySource) Collect(ctx context.Context, snap *model.Snapshot) error {
	lines, err := m.readLines("/proc/meminfo")
	if err != nil {
		return errUnavailable(m.Name(), err)
	}
	kv := util.ParseKeyValueLines(lines)

	total := util.ParseUint64(kv["MemTotal"]) * 1024
	avail := util.ParseUint64(kv["MemAvailable"]) * 1024
	if total == 0 {
		return errParse(m.Name(), fmt.Errorf("MemTotal missing from /proc/meminfo"))
	}
	if avail > total {
		avail = total
	}

	// Used counts what applications actually hold; reclaimable cache is
	// treated as available, matching what free(1) reports.
	used := total - avail
	snap.Memory = model.MemoryStats{
		TotalBytes:     total,
		UsedBytes:      used,
		AvailableBytes: avail,
		UsedPct:        100 * float64(used) / float64(total),
	}

	swapTotal := util.ParseUint64(kv["SwapTotal"]) * 1024
	swapFree := util.ParseUint64(kv["SwapFree"]) * 1024
	if swapTotal > 0 {
		if swapFree > swapTotal {
			swapFree = swapTotal
		}
		swapUsed := swapTotal - swapFree
		snap.Memory.SwapTotalBytes = swapTotal
		snap.Memory.SwapUsedBytes = swapUsed
		snap.Memory.SwapUsedPct = 100 * float64(swapUsed) / float64(swapTotal)
	}
	return nil
}
