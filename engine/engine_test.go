package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glasswing-io/sysdash/collector"
	"github.com/glasswing-io/sysdash/config"
	"github.com/glasswing-io/sysdash/model"
)

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

// tempSource reports a fixed CPU temperature.
type tempSource struct{ temp float64 }

func (s *tempSource) Name() string { return "temp" }

func (s *tempSource) Collect(ctx context.Context, snap *model.Snapshot) error {
	snap.CPUTemp = model.NewReading(model.QuantityCPUTemp, s.temp, "°C")
	return nil
}

// brokenSource always fails.
type brokenSource struct{}

func (s *brokenSource) Name() string { return "broken" }

func (s *brokenSource) Collect(ctx context.Context, snap *model.Snapshot) error {
	return fmt.Errorf("sensor exploded")
}

// panicSource panics during collection.
type panicSource struct{}

func (s *panicSource) Name() string { return "panicky" }

func (s *panicSource) Collect(ctx context.Context, snap *model.Snapshot) error {
	panic("bad parse")
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.MaxHistoryPoints = 5
	cfg.Display.ShowGPU = false
	return cfg
}

func TestTickSurvivesFailingSource(t *testing.T) {
	reg := collector.NewRegistry(time.Second, testLog,
		&tempSource{temp: 61}, &brokenSource{})
	e := NewWithRegistry(testConfig(), testLog, reg)

	snap := e.Tick(context.Background())
	if snap == nil {
		t.Fatal("Tick returned nil")
	}
	if !snap.CPUTemp.Valid || snap.CPUTemp.Value != 61 {
		t.Errorf("CPUTemp = %+v, want valid 61", snap.CPUTemp)
	}
	if len(snap.Errors) != 1 || !strings.HasPrefix(snap.Errors[0], "broken") {
		t.Errorf("Errors = %v, want one entry from broken", snap.Errors)
	}
}

func TestTickSurvivesPanickingSource(t *testing.T) {
	reg := collector.NewRegistry(time.Second, testLog,
		&tempSource{temp: 55}, &panicSource{})
	e := NewWithRegistry(testConfig(), testLog, reg)

	snap := e.Tick(context.Background())
	if !snap.CPUTemp.Valid {
		t.Error("a panicking source took the good one down with it")
	}
	if len(snap.Errors) != 1 {
		t.Errorf("Errors = %v, want one entry", snap.Errors)
	}
}

func TestTickFeedsHistory(t *testing.T) {
	src := &tempSource{temp: 50}
	reg := collector.NewRegistry(time.Second, testLog, src)
	e := NewWithRegistry(testConfig(), testLog, reg)

	for i := 0; i < 3; i++ {
		src.temp = 50 + float64(i)
		e.Tick(context.Background())
	}

	if e.CPUTemps.Len() != 3 {
		t.Fatalf("CPUTemps.Len() = %d, want 3", e.CPUTemps.Len())
	}
	latest, _ := e.CPUTemps.Latest()
	if latest.Value != 52 {
		t.Errorf("latest = %v, want 52", latest.Value)
	}
	min, max, ok := e.CPUTemps.Stats()
	if !ok || min != 50 || max != 52 {
		t.Errorf("Stats() = (%v, %v, %v), want (50, 52, true)", min, max, ok)
	}
}

func TestRecorderAndPlayerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")
	src := &tempSource{temp: 40}
	reg := collector.NewRegistry(time.Second, testLog, src)
	e := NewWithRegistry(testConfig(), testLog, reg)

	rec, err := NewRecorder(e, path, testLog)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		src.temp = 40 + float64(i*10)
		rec.Tick(context.Background())
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	player, err := NewPlayer(testConfig(), path, testLog)
	if err != nil {
		t.Fatal(err)
	}
	defer player.Close()

	var last *model.Snapshot
	for i := 0; i < 3; i++ {
		last = player.Tick(context.Background())
	}
	if !last.CPUTemp.Valid || last.CPUTemp.Value != 60 {
		t.Errorf("third frame CPUTemp = %+v, want valid 60", last.CPUTemp)
	}
	if player.Base().CPUTemps.Len() != 3 {
		t.Errorf("player history len = %d, want 3", player.Base().CPUTemps.Len())
	}

	// Past the end the final frame repeats.
	again := player.Tick(context.Background())
	if again.CPUTemp.Value != 60 {
		t.Errorf("post-EOF frame CPUTemp = %v, want 60", again.CPUTemp.Value)
	}
	if player.Base().CPUTemps.Len() != 3 {
		t.Error("post-EOF tick grew the history")
	}
}
