package collector

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/glasswing-io/sysdash/model"
	"github.com/glasswing-io/sysdash/util"
)

// gpuQuery is the field list requested from nvidia-smi, CSV without
// header or units so parsing stays position-based.
const gpuQuery = "name,temperature.gpu,utilization.gpu,memory.used,memory.total,power.draw"

// GPUSource samples GPU metrics through nvidia-smi, with nvidia-settings
// as a temperature-only fallback. Tool discovery runs once per process:
// a GPU does not appear or vanish between ticks, so re-probing every
// second would only burn exec calls.
type GPUSource struct {
	lookPath func(name string) (string, error)
	run      func(ctx context.Context, name string, args ...string) (string, error)

	probe    sync.Once
	smiPath  string
	settPath string
}

// NewGPUSource builds the source. lookPath and run are injectable for
// tests; nil uses the real exec package.
func NewGPUSource(lookPath func(string) (string, error), run func(context.Context, string, ...string) (string, error)) *GPUSource {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if run == nil {
		run = func(ctx context.Context, name string, args ...string) (string, error) {
			out, err := exec.CommandContext(ctx, name, args...).Output()
			return string(out), err
		}
	}
	return &GPUSource{lookPath: lookPath, run: run}
}

func (g *GPUSource) Name() string { return "gpu" }

func (g *GPUSource) Collect(ctx context.Context, snap *model.Snapshot) error {
	g.probe.Do(func() {
		g.smiPath, _ = g.lookPath("nvidia-smi")
		g.settPath, _ = g.lookPath("nvidia-settings")
	})

	snap.GPU = absentGPU()

	if g.smiPath != "" {
		out, err := g.run(ctx, g.smiPath, "--query-gpu="+gpuQuery, "--format=csv,noheader,nounits")
		if err != nil {
			return errTool(g.Name(), err)
		}
		stats, err := parseGPUCSV(out)
		if err != nil {
			return errParse(g.Name(), err)
		}
		snap.GPU = stats
		return nil
	}

	if g.settPath != "" {
		out, err := g.run(ctx, g.settPath, "-q", "gpucoretemp", "-t")
		if err != nil {
			return errTool(g.Name(), err)
		}
		if temp, ok := util.FirstNumber(out); ok {
			snap.GPU.Detected = true
			snap.GPU.Name = "NVIDIA GPU"
			snap.GPU.Temp = model.NewReading(model.QuantityGPUTemp, temp, "°C")
			return nil
		}
		return errParse(g.Name(), fmt.Errorf("no temperature in nvidia-settings output"))
	}

	return errUnavailable(g.Name(), fmt.Errorf("no nvidia management tool found"))
}

func absentGPU() model.GPUStats {
	return model.GPUStats{
		Temp:     model.Absent(model.QuantityGPUTemp, "°C"),
		Usage:    model.Absent(model.QuantityGPUUsage, "%"),
		MemUsed:  model.Absent(model.QuantityGPUVRAM, "MiB"),
		MemTotal: model.Absent(model.QuantityGPUVRAM, "MiB"),
		Power:    model.Absent(model.QuantityGPUPower, "W"),
	}
}

// parseGPUCSV reads the first line of nvidia-smi CSV output. Individual
// fields may read "[N/A]" (power draw on some boards); those become
// absent readings rather than failing the whole sample.
func parseGPUCSV(out string) (model.GPUStats, error) {
	stats := absentGPU()

	line := strings.TrimSpace(strings.SplitN(out, "\n", 2)[0])
	if line == "" {
		return stats, fmt.Errorf("empty nvidia-smi output")
	}
	fields := strings.Split(line, ",")
	if len(fields) != 6 {
		return stats, fmt.Errorf("expected 6 fields, got %d: %q", len(fields), line)
	}

	stats.Detected = true
	stats.Name = strings.TrimSpace(fields[0])

	set := func(r *model.Reading, q model.Quantity, raw, unit string) {
		raw = strings.TrimSpace(raw)
		if strings.Contains(raw, "N/A") {
			return
		}
		if v, ok := util.FirstNumber(raw); ok {
			*r = model.NewReading(q, v, unit)
		}
	}
	set(&stats.Temp, model.QuantityGPUTemp, fields[1], "°C")
	set(&stats.Usage, model.QuantityGPUUsage, fields[2], "%")
	set(&stats.MemUsed, model.QuantityGPUVRAM, fields[3], "MiB")
	set(&stats.MemTotal, model.QuantityGPUVRAM, fields[4], "MiB")
	set(&stats.Power, model.QuantityGPUPower, fields[5], "W")
	return stats, nil
}
