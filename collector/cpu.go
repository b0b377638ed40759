package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/glasswing-io/sysdash/model"
	"github.com/glasswing-io/sysdash/util"
)

// CPUSource samples processor utilization from /proc/stat and load
// averages from /proc/loadavg. Utilization is a delta between two
// consecutive stat samples, so the first tick reports it as absent.
type CPUSource struct {
	readLines func(path string) ([]string, error)

	havePrev  bool
	prevIdle  uint64
	prevTotal uint64
}

// NewCPUSource builds the source. readLines is injectable for tests;
// nil uses the real proc filesystem.
func NewCPUSource(readLines func(string) ([]string, error)) *CPUSource {
	if readLines == nil {
		readLines = util.ReadFileLines
	}
	return &CPUSource{readLines: readLines}
}

func (c *CPUSource) Name() string { return "cpu" }

func (c *CPUSource) Collect(ctx context.Context, snap *model.Snapshot) error {
	lines, err := c.readLines("/proc/stat")
	if err != nil {
		snap.CPU.Usage = model.Absent(model.QuantityCPUUsage, "%")
		return errUnavailable(c.Name(), err)
	}

	var cores int
	var parsed bool
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "cpu" {
			idle, total, err := parseCPUTimes(fields)
			if err != nil {
				snap.CPU.Usage = model.Absent(model.QuantityCPUUsage, "%")
				return errParse(c.Name(), err)
			}
			c.update(snap, idle, total)
			parsed = true
			continue
		}
		if strings.HasPrefix(fields[0], "cpu") {
			cores++
		}
	}
	if !parsed {
		snap.CPU.Usage = model.Absent(model.QuantityCPUUsage, "%")
		return errParse(c.Name(), fmt.Errorf("no aggregate cpu line in /proc/stat"))
	}
	snap.CPU.Cores = cores

	c.collectLoad(snap)
	return nil
}

// update computes usage from the delta against the previous sample and
// rolls the bookkeeping forward.
func (c *CPUSource) update(snap *model.Snapshot, idle, total uint64) {
	defer func() {
		c.prevIdle, c.prevTotal, c.havePrev = idle, total, true
	}()

	if !c.havePrev || total <= c.prevTotal {
		snap.CPU.Usage = model.Absent(model.QuantityCPUUsage, "%")
		return
	}
	dTotal := total - c.prevTotal
	dIdle := idle - c.prevIdle
	usage := 100 * float64(dTotal-dIdle) / float64(dTotal)
	if usage < 0 {
		usage = 0
	}
	if usage > 100 {
		usage = 100
	}
	snap.CPU.Usage = model.NewReading(model.QuantityCPUUsage, usage, "%")
}

func (c *CPUSource) collectLoad(snap *model.Snapshot) {
	lines, err := c.readLines("/proc/loadavg")
	if err != nil || len(lines) == 0 {
		return
	}
	fields := strings.Fields(lines[0])
	if len(fields) < 3 {
		return
	}
	snap.CPU.Load1 = util.ParseFloat64(fields[0])
	snap.CPU.Load5 = util.ParseFloat64(fields[1])
	snap.CPU.Load15 = util.ParseFloat64(fields[2])
}

// parseCPUTimes reads the aggregate "cpu" line. Idle time counts both
// idle and iowait; total is the sum of every column.
func parseCPUTimes(fields []string) (idle, total uint64, err error) {
	if len(fields) < 5 {
		return 0, 0, fmt.Errorf("short cpu line: %q", strings.Join(fields, " "))
	}
	for i, f := range fields[1:] {
		v := util.ParseUint64(f)
		total += v
		// columns: user nice system idle iowait irq softirq ...
		if i == 3 || i == 4 {
			idle += v
		}
	}
	return idle, total, nil
}
