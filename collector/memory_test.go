package collector

import (
	"context"
	"testing"

	"github.com/glasswing-io/sysdash/model"
)

func TestMemoryCollect(t *testing.T) {
	proc := &fakeProc{files: map[string][]string{
		"/proc/meminfo": {
			"MemTotal:       16384000 kB",
			"MemFree:         2048000 kB",
			"MemAvailable:    8192000 kB",
			"Buffers:          512000 kB",
			"SwapTotal:       4096000 kB",
			"SwapFree:        3072000 kB",
		},
	}}
	src := NewMemorySource(proc.readLines)

	var snap model.Snapshot
	if err := src.Collect(context.Background(), &snap); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	mem := snap.Memory
	if mem.TotalBytes != 16384000*1024 {
		t.Errorf("TotalBytes = %d", mem.TotalBytes)
	}
	// Used is total minus available, not total minus free.
	if mem.UsedBytes != (16384000-8192000)*1024 {
		t.Errorf("UsedBytes = %d", mem.UsedBytes)
	}
	if mem.UsedPct != 50 {
		t.Errorf("UsedPct = %v, want 50", mem.UsedPct)
	}
	if mem.SwapUsedBytes != (4096000-3072000)*1024 {
		t.Errorf("SwapUsedBytes = %d", mem.SwapUsedBytes)
	}
	if mem.SwapUsedPct != 25 {
		t.Errorf("SwapUsedPct = %v, want 25", mem.SwapUsedPct)
	}
}

func TestMemoryMissingTotal(t *testing.T) {
	proc := &fakeProc{files: map[string][]string{
		"/proc/meminfo": {"MemFree: 100 kB"},
	}}
	src := NewMemorySource(proc.readLines)

	var snap model.Snapshot
	err := src.Collect(context.Background(), &snap)
	se, ok := err.(*SourceError)
	if !ok || se.Kind != FailParseError {
		t.Errorf("err = %v, want SourceError{FailParseError}", err)
	}
}

func TestNetCollect(t *testing.T) {
	proc := &fakeProc{files: map[string][]string{
		"/proc/net/dev": {
			"Inter-|   Receive                                                |  Transmit",
			" face |bytes    packets errs drop fifo frame compressed multicast|bytes    packets errs drop fifo colls carrier compressed",
			"    lo: 9999999    9999    0    0    0     0          0         0  9999999    9999    0    0    0     0       0          0",
			"  eth0: 1000000    2000    0    0    0     0          0         0   500000    1000    0    0    0     0       0          0",
			" wlan0:  200000     400    0    0    0     0          0         0   100000     200    0    0    0     0       0          0",
		},
	}}
	src := NewNetSource(proc.readLines)

	var snap model.Snapshot
	if err := src.Collect(context.Background(), &snap); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	n := snap.Net
	if !n.Collected {
		t.Fatal("Collected = false")
	}
	if n.RxBytes != 1200000 || n.TxBytes != 600000 {
		t.Errorf("bytes = rx %d tx %d, want loopback excluded", n.RxBytes, n.TxBytes)
	}
	if n.RxPackets != 2400 || n.TxPackets != 1200 {
		t.Errorf("packets = rx %d tx %d", n.RxPackets, n.TxPackets)
	}
}
