package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glasswing-io/sysdash/engine"
	"github.com/glasswing-io/sysdash/model"
)

type tickMsg time.Time

// collectMsg carries one finished collection plus how long it took, so
// the next tick can be scheduled against the wall-clock cadence rather
// than stacking collection time on top of the interval.
type collectMsg struct {
	snap    *model.Snapshot
	elapsed time.Duration
}

type keyMap struct {
	Pause key.Binding
	Quit  key.Binding
	Help  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Pause, k.Help, k.Quit}}
}

var keys = keyMap{
	Pause: key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	ticker   engine.Ticker
	interval time.Duration
	theme    *Theme
	ctx      context.Context

	snap   *model.Snapshot
	width  int
	height int

	paused bool
	help   help.Model
}

// NewModel builds the dashboard model. ctx bounds the collections run
// from inside the program.
func NewModel(ctx context.Context, ticker engine.Ticker) Model {
	e := ticker.Base()
	return Model{
		ticker:   ticker,
		interval: e.Config().RefreshRate,
		theme:    NewTheme(e.Config().Colors),
		ctx:      ctx,
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return collectOnce(m.ctx, m.ticker)
}

func tick(d time.Duration) tea.Cmd {
	if d < 0 {
		d = 0
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func collectOnce(ctx context.Context, ticker engine.Ticker) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		snap := ticker.Tick(ctx)
		return collectMsg{snap: snap, elapsed: time.Since(start)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Pause):
			m.paused = !m.paused
			if !m.paused {
				return m, collectOnce(m.ctx, m.ticker)
			}
			return m, nil
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case tickMsg:
		if m.paused {
			return m, nil
		}
		return m, collectOnce(m.ctx, m.ticker)

	case collectMsg:
		m.snap = msg.snap
		if m.paused {
			return m, nil
		}
		// Drift correction: the next tick waits only for what is left of
		// the interval. A slow collection schedules immediately.
		return m, tick(m.interval - msg.elapsed)
	}
	return m, nil
}

func (m Model) View() string {
	if m.snap == nil {
		return m.theme.Dim.Render("Collecting data...")
	}
	out := RenderFrame(m.ticker.Base(), m.snap, m.theme, m.width)
	if m.paused {
		out += "\n" + m.theme.Warning.Render("⏸ paused")
	}
	return out + "\n" + m.help.View(keys)
}

// Run starts the TUI and blocks until the user quits or ctx ends.
func Run(ctx context.Context, ticker engine.Ticker) error {
	p := tea.NewProgram(NewModel(ctx, ticker), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
