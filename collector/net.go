package collector

import (
	"context"
	"strings"

	"github.com/glasswing-io/sysdash/model"
	"github.com/glasswing-io/sysdash/util"
)

// NetSource sums interface counters from /proc/net/dev, skipping the
// loopback device.
type NetSource struct {
	readLines func(path string) ([]string, error)
}

// NewNetSource builds the source. readLines is injectable for tests;
// nil uses the real proc filesystem.
func NewNetSource(readLines func(string) ([]string, error)) *NetSource {
	if readLines == nil {
		readLines = util.ReadFileLines
	}
	return &NetSource{readLines: readLines}
}

func (n *NetSource) Name() string { return "net" }

func (n *NetSource) Collect(ctx context.Context, snap *model.Snapshot) error {
	lines, err := n.readLines("/proc/net/dev")
	if err != nil {
		return errUnavailable(n.Name(), err)
	}

	var stats model.NetStats
	for _, line := range lines {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue // header lines
		}
		iface := strings.TrimSpace(line[:idx])
		if iface == "lo" {
			continue
		}
		fields := strings.Fields(line[idx+1:])
		// rx: bytes packets errs drop fifo frame compressed multicast,
		// then the same eight for tx.
		if len(fields) < 16 {
			continue
		}
		stats.RxBytes += util.ParseUint64(fields[0])
		stats.RxPackets += util.ParseUint64(fields[1])
		stats.TxBytes += util.ParseUint64(fields[8])
		stats.TxPackets += util.ParseUint64(fields[9])
	}
	stats.Collected = true
	snap.Net = stats
	return nil
}
