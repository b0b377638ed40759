package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/glasswing-io/sysdash/config"
	"github.com/glasswing-io/sysdash/model"
)

var (
	colorRed     = lipgloss.Color("#FF5555")
	colorYellow  = lipgloss.Color("#F1FA8C")
	colorGreen   = lipgloss.Color("#50FA7B")
	colorCyan    = lipgloss.Color("#8BE9FD")
	colorMagenta = lipgloss.Color("#FF79C6")
	colorOrange  = lipgloss.Color("#FFB86C")
	colorBlue    = lipgloss.Color("#6A8DFF")
	colorWhite   = lipgloss.Color("#F8F8F2")
	colorGray    = lipgloss.Color("#6272A4")
	colorBlack   = lipgloss.Color("#21222C")
)

// namedColors maps the color names accepted in the config file to the
// palette above.
var namedColors = map[string]lipgloss.Color{
	"black":   colorBlack,
	"red":     colorRed,
	"green":   colorGreen,
	"yellow":  colorYellow,
	"blue":    colorBlue,
	"magenta": colorMagenta,
	"cyan":    colorCyan,
	"white":   colorWhite,
	"gray":    colorGray,
	"orange":  colorOrange,
}

// Theme holds the resolved styles for one run. Severity styling comes
// from the config's color names; the chrome styles are fixed.
type Theme struct {
	Normal   lipgloss.Style
	Warning  lipgloss.Style
	Critical lipgloss.Style
	Unknown  lipgloss.Style

	Title  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Dim    lipgloss.Style
	Header lipgloss.Style
	Help   lipgloss.Style
	Panel  lipgloss.Style
}

// NewTheme resolves the config colors into styles. NO_COLOR in the
// environment disables all styling.
func NewTheme(colors config.ColorConfig) *Theme {
	if termenv.EnvNoColor() {
		return plainTheme()
	}
	pick := func(name string, fallback lipgloss.Color) lipgloss.Color {
		if c, ok := namedColors[name]; ok {
			return c
		}
		return fallback
	}
	return &Theme{
		Normal:   lipgloss.NewStyle().Foreground(pick(colors.Normal, colorGreen)),
		Warning:  lipgloss.NewStyle().Foreground(pick(colors.Warning, colorYellow)).Bold(true),
		Critical: lipgloss.NewStyle().Foreground(pick(colors.Critical, colorRed)).Bold(true),
		Unknown:  lipgloss.NewStyle().Foreground(colorGray),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorCyan),
		Label:    lipgloss.NewStyle().Foreground(colorGray),
		Value:    lipgloss.NewStyle().Foreground(colorWhite),
		Dim:      lipgloss.NewStyle().Foreground(colorGray),
		Header:   lipgloss.NewStyle().Foreground(colorMagenta).Bold(true),
		Help:     lipgloss.NewStyle().Foreground(colorGray),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1),
	}
}

func plainTheme() *Theme {
	s := lipgloss.NewStyle()
	return &Theme{
		Normal: s, Warning: s, Critical: s, Unknown: s,
		Title: s, Label: s, Value: s, Dim: s, Header: s, Help: s,
		Panel: s.Border(lipgloss.NormalBorder()).Padding(0, 1),
	}
}

// Severity returns the style for a severity tier.
func (t *Theme) Severity(sev model.Severity) lipgloss.Style {
	switch sev {
	case model.SevCritical:
		return t.Critical
	case model.SevWarning:
		return t.Warning
	case model.SevUnknown:
		return t.Unknown
	}
	return t.Normal
}

// Temp styles a temperature value against the configured thresholds.
func (t *Theme) Temp(r model.Reading, th model.Thresholds) lipgloss.Style {
	return t.Severity(th.ClassifyReading(r))
}

// Pct styles a utilization percentage with the fixed 50/75 tiers.
func (t *Theme) Pct(pct float64) lipgloss.Style {
	return t.Severity(model.PercentTiers.Classify(pct))
}

// EnvNoColor reports whether styling should be disabled entirely. The
// watch renderer uses this without constructing a theme.
func EnvNoColor() bool {
	if termenv.EnvNoColor() {
		return true
	}
	term := os.Getenv("TERM")
	return term == "" || term == "dumb"
}
