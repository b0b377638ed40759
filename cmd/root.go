package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/glasswing-io/sysdash/config"
	"github.com/glasswing-io/sysdash/engine"
	"github.com/glasswing-io/sysdash/ui"
)

// Version is set at build time via ldflags.
var Version = "0.3.0"

type rootFlags struct {
	configPath string
	interval   float64
	history    int
	watch      bool
	count      int
	once       bool
	record     string
	replay     string
	debugLog   string
}

// Execute is the CLI entry point.
func Execute() error {
	var f rootFlags

	root := &cobra.Command{
		Use:     "sysdash",
		Short:   "Live hardware and OS metrics dashboard for the terminal",
		Version: Version,
		Long: `sysdash polls CPU and GPU temperatures, utilization, memory, and disk
usage on a fixed interval and renders them as a live dashboard with
history graphs and threshold-based color alerts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(&f)
		},
	}

	root.Flags().StringVarP(&f.configPath, "config", "c", "", "config file (default ~/.config/sysdash/config.yaml)")
	root.Flags().Float64VarP(&f.interval, "interval", "i", 0, "refresh interval in seconds (overrides config)")
	root.Flags().IntVar(&f.history, "history", 0, "history points per graph (overrides config)")
	root.Flags().BoolVarP(&f.watch, "watch", "w", false, "plain terminal output with auto-refresh, no TUI")
	root.Flags().IntVar(&f.count, "count", 0, "iterations for --watch (0 = until interrupted)")
	root.Flags().BoolVar(&f.once, "once", false, "print a single JSON snapshot and exit")
	root.Flags().StringVar(&f.record, "record", "", "record snapshots to a JSONL file while running")
	root.Flags().StringVar(&f.replay, "replay", "", "replay a recorded JSONL file instead of sampling")
	root.Flags().StringVar(&f.debugLog, "debug-log", "", "write debug logs to a file")

	root.AddCommand(newInitCmd())
	return root.Execute()
}

func run(f *rootFlags) error {
	log, closeLog, err := newLogger(f)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := config.Load(f.configPath, log)
	if f.interval > 0 {
		cfg.RefreshRate = time.Duration(f.interval * float64(time.Second))
	}
	if f.history > 0 {
		cfg.MaxHistoryPoints = f.history
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if f.replay != "" && f.record != "" {
		return errors.New("--record and --replay are mutually exclusive")
	}

	var ticker engine.Ticker
	switch {
	case f.replay != "":
		player, err := engine.NewPlayer(cfg, f.replay, log)
		if err != nil {
			return err
		}
		defer player.Close()
		ticker = player
	case f.record != "":
		rec, err := engine.NewRecorder(engine.New(cfg, log), f.record, log)
		if err != nil {
			return err
		}
		defer rec.Close()
		ticker = rec
	default:
		ticker = engine.New(cfg, log)
	}

	if f.once {
		return runOnce(ctx, ticker)
	}
	if f.watch {
		return runWatch(ctx, ticker, f.count)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal; use --watch or --once for non-interactive output")
	}
	err = ui.Run(ctx, ticker)
	if err != nil && ctx.Err() != nil {
		// Killed by signal: a deliberate stop, not a failure.
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
	}
	return err
}

// runOnce prints one snapshot as JSON. CPU usage needs two stat samples,
// so a short second tick follows the first.
func runOnce(ctx context.Context, ticker engine.Ticker) error {
	ticker.Tick(ctx)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(200 * time.Millisecond):
	}
	snap := ticker.Tick(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// newLogger builds the run's logger. The TUI owns the terminal, so logs
// go to a file when requested and are discarded otherwise; warnings
// raised before the TUI starts (config problems) still reach stderr.
func newLogger(f *rootFlags) (*slog.Logger, func(), error) {
	if f.debugLog != "" {
		file, err := os.OpenFile(f.debugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open debug log: %w", err)
		}
		log := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
		return log, func() { file.Close() }, nil
	}
	if f.watch || f.once {
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		return log, func() {}, nil
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return log, func() {}, nil
}
