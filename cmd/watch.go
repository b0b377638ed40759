package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/glasswing-io/sysdash/engine"
	"github.com/glasswing-io/sysdash/ui"
)

// ansiClear repositions the cursor and wipes the previous frame so the
// output refreshes in place instead of scrolling.
const ansiClear = "\033[H\033[2J"

// runWatch renders frames to the plain terminal on the configured
// cadence. count > 0 stops after that many frames; an interrupt stops
// cleanly at the next tick boundary either way.
func runWatch(ctx context.Context, ticker engine.Ticker, count int) error {
	e := ticker.Base()
	interval := e.Config().RefreshRate
	theme := ui.NewTheme(e.Config().Colors)

	clear := ansiClear
	if ui.EnvNoColor() {
		clear = "\n"
	}

	for n := 0; ; n++ {
		start := time.Now()
		snap := ticker.Tick(ctx)

		fmt.Print(clear)
		fmt.Println(ui.RenderFrame(e, snap, theme, 100))

		if count > 0 && n+1 >= count {
			return nil
		}

		// The wait absorbs collection time so frames land on the
		// interval grid; a slow tick triggers the next one immediately.
		wait := interval - time.Since(start)
		if wait < 0 {
			wait = 0
		}
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case <-time.After(wait):
		}
	}
}
