package ui

import (
	"strings"
	"testing"

	"github.com/glasswing-io/sysdash/config"
	"github.com/glasswing-io/sysdash/engine"
	"github.com/glasswing-io/sysdash/model"
)

func testTheme() *Theme { return plainTheme() }

func TestTempChartEmpty(t *testing.T) {
	h := engine.NewHistory(10)
	out := tempChart(h, "CPU Temperature", 60, 6, model.Thresholds{Warning: 70, Critical: 80}, testTheme())
	if !strings.Contains(out, "Collecting data...") {
		t.Errorf("empty chart = %q, want collecting notice", out)
	}
}

func TestTempChartAllAbsent(t *testing.T) {
	h := engine.NewHistory(10)
	h.Push(model.Absent(model.QuantityCPUTemp, "°C"))
	out := tempChart(h, "CPU Temperature", 60, 6, model.Thresholds{Warning: 70, Critical: 80}, testTheme())
	if !strings.Contains(out, "No data available") {
		t.Errorf("absent-only chart = %q, want no-data notice", out)
	}
}

func TestTempChartRendersData(t *testing.T) {
	h := engine.NewHistory(10)
	for _, v := range []float64{48, 52, 60, 71, 66} {
		h.Push(model.NewReading(model.QuantityCPUTemp, v, "°C"))
	}
	out := tempChart(h, "CPU Temperature", 60, 6, model.Thresholds{Warning: 70, Critical: 80}, testTheme())

	if !strings.Contains(out, "CPU Temperature") {
		t.Error("title missing")
	}
	if !strings.Contains(out, "now: 66.0°C") {
		t.Errorf("current value missing from:\n%s", out)
	}
	if !strings.Contains(out, "min: 48.0°C") || !strings.Contains(out, "max: 71.0°C") {
		t.Errorf("min/max footer missing from:\n%s", out)
	}
	if !strings.Contains(out, "█") {
		t.Error("no filled cells rendered")
	}
	lines := strings.Split(out, "\n")
	// title + height rows + axis + footer
	if len(lines) != 1+6+1+1 {
		t.Errorf("got %d lines, want 9:\n%s", len(lines), out)
	}
}

func TestBarClamps(t *testing.T) {
	theme := testTheme()
	full := bar(150, 10, theme)
	if strings.Contains(full, "░") {
		t.Errorf("over-100%% bar not fully filled: %q", full)
	}
	empty := bar(-5, 10, theme)
	if strings.Contains(empty, "█") {
		t.Errorf("negative bar shows fill: %q", empty)
	}
}

func TestRenderFrameSmoke(t *testing.T) {
	cfg := config.Default()
	cfg.Display.ShowGPU = false
	e := engine.NewWithRegistry(cfg, nil, nil)

	snap := &model.Snapshot{
		CPUTemp: model.NewReading(model.QuantityCPUTemp, 55, "°C"),
		Memory: model.MemoryStats{
			TotalBytes: 8 << 30, UsedBytes: 4 << 30, AvailableBytes: 4 << 30, UsedPct: 50,
		},
		Mounts: []model.MountUsage{{
			Device: "/dev/sda1", MountPoint: "/", FSType: "ext4",
			TotalBytes: 100 << 30, UsedBytes: 60 << 30, FreeBytes: 40 << 30, UsedPct: 60,
		}},
		Errors: []string{"gpu: unavailable"},
	}
	e.CPUTemps.Push(snap.CPUTemp)

	out := RenderFrame(e, snap, testTheme(), 80)
	for _, want := range []string{"System", "Disks", "/dev/sda1", "gpu: unavailable"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}
