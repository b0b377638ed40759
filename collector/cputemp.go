package collector

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/glasswing-io/sysdash/model"
	"github.com/glasswing-io/sysdash/util"
)

// CPUTempSource samples the processor temperature. It prefers the
// lm-sensors tool, averaging the per-core lines, and falls back to the
// hwmon sysfs tree when the tool is missing.
type CPUTempSource struct {
	runSensors func(ctx context.Context) (string, error)
	hwmonRoot  string
}

// NewCPUTempSource builds the source. run is injectable for tests; nil
// executes the real sensors binary.
func NewCPUTempSource(run func(ctx context.Context) (string, error)) *CPUTempSource {
	if run == nil {
		run = func(ctx context.Context) (string, error) {
			out, err := exec.CommandContext(ctx, "sensors").Output()
			return string(out), err
		}
	}
	return &CPUTempSource{runSensors: run, hwmonRoot: "/sys/class/hwmon"}
}

func (c *CPUTempSource) Name() string { return "cpu_temp" }

func (c *CPUTempSource) Collect(ctx context.Context, snap *model.Snapshot) error {
	out, err := c.runSensors(ctx)
	if err == nil {
		if temp, ok := averageCoreTemps(out); ok {
			snap.CPUTemp = model.NewReading(model.QuantityCPUTemp, temp, "°C")
			return nil
		}
	}

	if temp, ok := c.hwmonTemp(); ok {
		snap.CPUTemp = model.NewReading(model.QuantityCPUTemp, temp, "°C")
		return nil
	}

	snap.CPUTemp = model.Absent(model.QuantityCPUTemp, "°C")
	if err != nil {
		return errUnavailable(c.Name(), err)
	}
	return errParse(c.Name(), fmt.Errorf("no core temperature lines in sensors output"))
}

var tempRe = regexp.MustCompile(`\+(\d+(?:\.\d+)?)`)

// averageCoreTemps averages all "Core N" readings from sensors output.
// Lines look like "Core 0:  +45.0°C  (high = +80.0°C, crit = +100.0°C)";
// only the first signed temperature on each line counts.
func averageCoreTemps(out string) (float64, bool) {
	var sum float64
	var n int
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "Core") || !strings.Contains(line, "+") {
			continue
		}
		m := tempRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		v, ok := util.FirstNumber(m[1])
		if !ok {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// cpuSensorNames are hwmon chip names that report a package temperature.
var cpuSensorNames = map[string]bool{
	"coretemp":    true,
	"k10temp":     true,
	"zenpower":    true,
	"cpu_thermal": true,
}

// hwmonTemp scans /sys/class/hwmon for a known CPU chip and reads its
// first temperature input (millidegrees).
func (c *CPUTempSource) hwmonTemp() (float64, bool) {
	entries, err := os.ReadDir(c.hwmonRoot)
	if err != nil {
		return 0, false
	}
	for _, e := range entries {
		dir := filepath.Join(c.hwmonRoot, e.Name())
		name, err := util.ReadFileString(filepath.Join(dir, "name"))
		if err != nil || !cpuSensorNames[strings.TrimSpace(name)] {
			continue
		}
		raw, err := util.ReadFileString(filepath.Join(dir, "temp1_input"))
		if err != nil {
			continue
		}
		milli, ok := util.FirstNumber(raw)
		if !ok {
			continue
		}
		return milli / 1000, true
	}
	return 0, false
}
