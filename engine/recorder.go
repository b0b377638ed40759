package engine

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/glasswing-io/sysdash/config"
	"github.com/glasswing-io/sysdash/model"
)

// Recorder wraps a live engine and writes every snapshot to a JSONL
// file, one frame per line, for later replay.
type Recorder struct {
	engine *Engine
	w      *bufio.Writer
	f      *os.File
	enc    *json.Encoder
	log    *slog.Logger
}

// NewRecorder opens (truncating) the recording file.
func NewRecorder(engine *Engine, path string, log *slog.Logger) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	w := bufio.NewWriter(f)
	return &Recorder{engine: engine, w: w, f: f, enc: json.NewEncoder(w), log: log}, nil
}

// Base implements Ticker.
func (r *Recorder) Base() *Engine { return r.engine }

// Tick collects a live snapshot and appends it to the recording. A
// write failure is logged but never disturbs the live view.
func (r *Recorder) Tick(ctx context.Context) *model.Snapshot {
	snap := r.engine.Tick(ctx)
	if err := r.enc.Encode(snap); err != nil {
		r.log.Warn("recording write failed", "err", err)
	}
	return snap
}

// Close flushes and closes the recording file.
func (r *Recorder) Close() error {
	if err := r.w.Flush(); err != nil {
		r.f.Close()
		return err
	}
	return r.f.Close()
}

// Player replays a recorded session frame by frame. Once the recording
// is exhausted it keeps returning the final frame, so the dashboard
// settles on the last recorded state instead of going blank.
type Player struct {
	engine *Engine
	dec    *json.Decoder
	f      *os.File
	last   *model.Snapshot
	log    *slog.Logger
}

// NewPlayer opens a recording for replay. The player carries its own
// history rings, rebuilt from the recorded temperatures as frames are
// consumed.
func NewPlayer(cfg *config.Config, path string, log *slog.Logger) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	engine := NewWithRegistry(cfg, log, nil)
	return &Player{engine: engine, dec: json.NewDecoder(bufio.NewReader(f)), f: f, log: log}, nil
}

// Base implements Ticker.
func (p *Player) Base() *Engine { return p.engine }

// Tick returns the next recorded frame. Malformed lines end the replay
// the same way EOF does.
func (p *Player) Tick(ctx context.Context) *model.Snapshot {
	var snap model.Snapshot
	if err := p.dec.Decode(&snap); err != nil {
		if err != io.EOF {
			p.log.Warn("replay decode failed, holding last frame", "err", err)
		}
		if p.last != nil {
			return p.last
		}
		return &model.Snapshot{}
	}

	p.engine.CPUTemps.Push(snap.CPUTemp)
	if p.engine.cfg.Display.ShowGPU {
		p.engine.GPUTemps.Push(snap.GPU.Temp)
	}
	p.last = &snap
	return &snap
}

// Close closes the recording file.
func (p *Player) Close() error { return p.f.Close() }
