package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/glasswing-io/sysdash/engine"
	"github.com/glasswing-io/sysdash/model"
)

// headerPanel renders the top line: host, kernel, clock.
func headerPanel(snap *model.Snapshot, theme *Theme, width int) string {
	left := theme.Header.Render("sysdash")
	if snap.SysInfo != nil && snap.SysInfo.Hostname != "" {
		left += theme.Dim.Render(" @ ") + theme.Value.Render(snap.SysInfo.Hostname)
	}
	if snap.SysInfo != nil && snap.SysInfo.Kernel != "" {
		left += theme.Dim.Render("  linux " + snap.SysInfo.Kernel)
	}
	right := theme.Dim.Render(snap.Timestamp.Format("15:04:05"))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// tempsPanel renders the CPU temperature graph, plus the GPU graph when
// a GPU was detected.
func tempsPanel(e *engine.Engine, snap *model.Snapshot, theme *Theme, width int) string {
	cfg := e.Config()
	h := cfg.Display.GraphHeight
	w := width
	if w > cfg.Display.GraphLength+5 {
		w = cfg.Display.GraphLength + 5
	}

	out := tempChart(e.CPUTemps, "CPU Temperature", w, h, cfg.Thresholds, theme)
	if cfg.Display.ShowGPU && snap.GPU.Detected {
		out += "\n\n" + tempChart(e.GPUTemps, "GPU Temperature", w, h, cfg.Thresholds, theme)
	}
	return theme.Panel.Render(out)
}

// systemPanel renders CPU usage, load, memory, swap, and uptime.
func systemPanel(snap *model.Snapshot, theme *Theme) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("System"))
	sb.WriteString("\n")

	sb.WriteString(theme.Label.Render("CPU    "))
	if snap.CPU.Usage.Valid {
		pct := snap.CPU.Usage.Value
		sb.WriteString(bar(pct, 20, theme))
		sb.WriteString(theme.Pct(pct).Render(fmt.Sprintf(" %5.1f%%", pct)))
	} else {
		sb.WriteString(theme.Dim.Render("measuring..."))
	}
	if snap.CPU.Cores > 0 {
		sb.WriteString(theme.Dim.Render(fmt.Sprintf("  %d cores", snap.CPU.Cores)))
	}
	sb.WriteString("\n")

	sb.WriteString(theme.Label.Render("Load   "))
	sb.WriteString(theme.Value.Render(fmt.Sprintf("%.2f %.2f %.2f", snap.CPU.Load1, snap.CPU.Load5, snap.CPU.Load15)))
	sb.WriteString("\n")

	mem := snap.Memory
	sb.WriteString(theme.Label.Render("Memory "))
	if mem.TotalBytes > 0 {
		sb.WriteString(bar(mem.UsedPct, 20, theme))
		sb.WriteString(theme.Pct(mem.UsedPct).Render(fmt.Sprintf(" %5.1f%%", mem.UsedPct)))
		sb.WriteString(theme.Dim.Render(fmt.Sprintf("  %s / %s",
			humanize.IBytes(mem.UsedBytes), humanize.IBytes(mem.TotalBytes))))
	} else {
		sb.WriteString(theme.Dim.Render("N/A"))
	}
	sb.WriteString("\n")

	if mem.SwapTotalBytes > 0 {
		sb.WriteString(theme.Label.Render("Swap   "))
		sb.WriteString(bar(mem.SwapUsedPct, 20, theme))
		sb.WriteString(theme.Pct(mem.SwapUsedPct).Render(fmt.Sprintf(" %5.1f%%", mem.SwapUsedPct)))
		sb.WriteString(theme.Dim.Render(fmt.Sprintf("  %s / %s",
			humanize.IBytes(mem.SwapUsedBytes), humanize.IBytes(mem.SwapTotalBytes))))
		sb.WriteString("\n")
	}

	if snap.SysInfo != nil && !snap.SysInfo.BootTime.IsZero() {
		sb.WriteString(theme.Label.Render("Uptime "))
		sb.WriteString(theme.Value.Render(formatUptime(time.Since(snap.SysInfo.BootTime))))
		sb.WriteString("\n")
	}
	return theme.Panel.Render(strings.TrimRight(sb.String(), "\n"))
}

// gpuPanel renders GPU details. Hidden entirely when no GPU was found.
func gpuPanel(snap *model.Snapshot, th model.Thresholds, theme *Theme) string {
	if !snap.GPU.Detected {
		return ""
	}
	gpu := snap.GPU

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("GPU"))
	sb.WriteString(theme.Dim.Render("  " + gpu.Name))
	sb.WriteString("\n")

	sb.WriteString(theme.Label.Render("Temp   "))
	sb.WriteString(readingText(gpu.Temp, theme.Temp(gpu.Temp, th), theme, "%.0f%s"))
	sb.WriteString("\n")

	sb.WriteString(theme.Label.Render("Usage  "))
	if gpu.Usage.Valid {
		sb.WriteString(bar(gpu.Usage.Value, 20, theme))
		sb.WriteString(theme.Pct(gpu.Usage.Value).Render(fmt.Sprintf(" %5.1f%%", gpu.Usage.Value)))
	} else {
		sb.WriteString(theme.Dim.Render("N/A"))
	}
	sb.WriteString("\n")

	sb.WriteString(theme.Label.Render("VRAM   "))
	if gpu.MemUsed.Valid && gpu.MemTotal.Valid && gpu.MemTotal.Value > 0 {
		pct := 100 * gpu.MemUsed.Value / gpu.MemTotal.Value
		sb.WriteString(bar(pct, 20, theme))
		sb.WriteString(theme.Pct(pct).Render(fmt.Sprintf(" %5.1f%%", pct)))
		sb.WriteString(theme.Dim.Render(fmt.Sprintf("  %.0f / %.0f MiB", gpu.MemUsed.Value, gpu.MemTotal.Value)))
	} else {
		sb.WriteString(theme.Dim.Render("N/A"))
	}
	sb.WriteString("\n")

	sb.WriteString(theme.Label.Render("Power  "))
	sb.WriteString(readingText(gpu.Power, theme.Value, theme, "%.1f%s"))
	return theme.Panel.Render(sb.String())
}

// diskPanel renders the mount table with per-cell coloring of the use
// column.
func diskPanel(snap *model.Snapshot, theme *Theme) string {
	if len(snap.Mounts) == 0 {
		return theme.Panel.Render(theme.Title.Render("Disks") + "\n" + theme.Dim.Render("No mounts to show"))
	}
	mounts := snap.Mounts

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("MOUNT", "DEVICE", "TYPE", "SIZE", "USED", "FREE", "USE%").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.Label.Padding(0, 1)
			}
			if col == 6 && row >= 0 && row < len(mounts) {
				return theme.Pct(mounts[row].UsedPct).Padding(0, 1)
			}
			return theme.Value.Padding(0, 1)
		})
	for _, m := range mounts {
		t.Row(
			m.MountPoint,
			m.Device,
			m.FSType,
			humanize.IBytes(m.TotalBytes),
			humanize.IBytes(m.UsedBytes),
			humanize.IBytes(m.FreeBytes),
			fmt.Sprintf("%.1f%%", m.UsedPct),
		)
	}
	return theme.Panel.Render(theme.Title.Render("Disks") + "\n" + t.Render())
}

// netPanel renders cumulative interface counters.
func netPanel(snap *model.Snapshot, theme *Theme) string {
	if !snap.Net.Collected {
		return ""
	}
	n := snap.Net
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Network"))
	sb.WriteString("\n")
	sb.WriteString(theme.Label.Render("RX  "))
	sb.WriteString(theme.Value.Render(humanize.IBytes(n.RxBytes)))
	sb.WriteString(theme.Dim.Render(fmt.Sprintf("  %s pkts", humanize.Comma(int64(n.RxPackets)))))
	sb.WriteString("\n")
	sb.WriteString(theme.Label.Render("TX  "))
	sb.WriteString(theme.Value.Render(humanize.IBytes(n.TxBytes)))
	sb.WriteString(theme.Dim.Render(fmt.Sprintf("  %s pkts", humanize.Comma(int64(n.TxPackets)))))
	return theme.Panel.Render(sb.String())
}

// errorLine summarizes source failures for the footer, if any.
func errorLine(snap *model.Snapshot, theme *Theme) string {
	if len(snap.Errors) == 0 {
		return ""
	}
	return theme.Warning.Render("⚠ " + strings.Join(snap.Errors, "; "))
}

// readingText formats a reading with its style, or a dim N/A when absent.
func readingText(r model.Reading, style lipgloss.Style, theme *Theme, format string) string {
	if !r.Valid {
		return theme.Dim.Render("N/A")
	}
	return style.Render(fmt.Sprintf(format, r.Value, r.Unit))
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// RenderFrame assembles the full dashboard frame. Shared by the TUI and
// the plain watch mode so both show the same content.
func RenderFrame(e *engine.Engine, snap *model.Snapshot, theme *Theme, width int) string {
	if width <= 0 {
		width = 80
	}
	cfg := e.Config()

	parts := []string{
		headerPanel(snap, theme, width),
		tempsPanel(e, snap, theme, width),
		systemPanel(snap, theme),
	}
	if p := gpuPanel(snap, cfg.Thresholds, theme); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, diskPanel(snap, theme))
	if p := netPanel(snap, theme); p != "" {
		parts = append(parts, p)
	}
	if p := errorLine(snap, theme); p != "" {
		parts = append(parts, p)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
