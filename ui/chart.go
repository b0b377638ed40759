package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/glasswing-io/sysdash/engine"
	"github.com/glasswing-io/sysdash/model"
)

// subBlocks gives sub-cell resolution with fractional block characters.
var subBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// tempChart renders a temperature history as an area chart with Y-axis
// labels and per-column severity coloring:
//
//	CPU Temperature  now: 62.0°C
//	 80│
//	 70│          ▂███
//	 60│      ▅███████▇▃      ▁█
//	 50│   ▃████████████████████
//	   └────────────────────────
//	   min: 48.2°C  max: 74.0°C
//
// The Y range adapts to the data with a little headroom so small swings
// stay visible. Gaps where the sensor was absent render as blank columns.
func tempChart(hist *engine.History, title string, width, height int, th model.Thresholds, theme *Theme) string {
	readings := hist.Snapshot()
	lo, hi, ok := hist.Stats()
	if !ok {
		if len(readings) == 0 {
			return theme.Title.Render(title) + "\n" + theme.Dim.Render("Collecting data...")
		}
		return theme.Title.Render(title) + "\n" + theme.Dim.Render("No data available")
	}

	if height < 2 {
		height = 2
	}
	axisW := 4
	chartW := width - axisW - 1
	if chartW < 10 {
		chartW = 10
	}
	if len(readings) > chartW {
		readings = readings[len(readings)-chartW:]
	}

	// Pad the Y range so the trace is not glued to the frame. Flat data
	// still gets a visible band.
	minVal := lo - 5
	maxVal := hi + 5
	if maxVal-minVal < 10 {
		mid := (maxVal + minVal) / 2
		minVal, maxVal = mid-5, mid+5
	}
	rangeVal := maxVal - minVal

	var sb strings.Builder
	current, _ := hist.Latest()
	sb.WriteString(theme.Title.Render(title))
	if current.Valid {
		sb.WriteString("  ")
		sb.WriteString(theme.Temp(current, th).Render(fmt.Sprintf("now: %.1f%s", current.Value, current.Unit)))
	} else {
		sb.WriteString("  ")
		sb.WriteString(theme.Dim.Render("now: N/A"))
	}
	sb.WriteString("\n")

	for row := height - 1; row >= 0; row-- {
		yVal := minVal + (float64(row+1)/float64(height))*rangeVal
		sb.WriteString(theme.Dim.Render(fmt.Sprintf("%3.0f", yVal)))
		sb.WriteString(theme.Dim.Render("│"))

		for _, r := range readings {
			if !r.Valid {
				sb.WriteRune(' ')
				continue
			}
			normalized := (r.Value - minVal) / rangeVal * float64(height)
			cellBottom := float64(row)
			cellTop := float64(row + 1)

			var ch rune
			switch {
			case normalized >= cellTop:
				ch = '█'
			case normalized <= cellBottom:
				ch = ' '
			default:
				idx := int((normalized - cellBottom) * 8)
				if idx >= len(subBlocks) {
					idx = len(subBlocks) - 1
				}
				if idx < 0 {
					idx = 0
				}
				ch = subBlocks[idx]
			}
			if ch == ' ' {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteString(theme.Temp(r, th).Render(string(ch)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(theme.Dim.Render("   └" + strings.Repeat("─", len(readings))))
	sb.WriteString("\n")
	sb.WriteString(theme.Dim.Render(fmt.Sprintf("   min: %.1f°C  max: %.1f°C", lo, hi)))
	return sb.String()
}

// bar renders a fixed-width usage bar, colored by the percentage tiers.
func bar(pct float64, width int, theme *Theme) string {
	if width < 4 {
		width = 4
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	style := theme.Pct(pct)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		style.Render(strings.Repeat("█", filled)),
		theme.Dim.Render(strings.Repeat("░", width-filled)),
	)
}
