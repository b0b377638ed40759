package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/glasswing-io/sysdash/collector"
	"github.com/glasswing-io/sysdash/config"
	"github.com/glasswing-io/sysdash/model"
)

// Ticker produces one snapshot per call. Engine is the live
// implementation; Player replays a recorded session through the same
// interface so every render path works identically against both.
type Ticker interface {
	Tick(ctx context.Context) *model.Snapshot
	Base() *Engine
}

// Engine owns the collection cycle: it runs the registry, stamps the
// snapshot, and feeds the temperature rings that back the graphs.
type Engine struct {
	registry *collector.Registry
	cfg      *config.Config
	log      *slog.Logger

	CPUTemps *History
	GPUTemps *History

	// tickMu serializes ticks. The refresh loop never overlaps them, but
	// nothing else should rely on that.
	tickMu sync.Mutex
}

// New assembles an engine with the standard source set for this host.
func New(cfg *config.Config, log *slog.Logger) *Engine {
	filter := collector.MountFilter{
		ExcludeVirtualFilesystems: cfg.Filters.ExcludeVirtualFilesystems,
		ExcludeLoopDevices:        cfg.Filters.ExcludeLoopDevices,
		ExcludeSnapMounts:         cfg.Filters.ExcludeSnapMounts,
	}

	// Each source gets most of a refresh interval before it is cut off,
	// so a hung nvidia-smi cannot push the loop past its cadence.
	timeout := cfg.RefreshRate * 8 / 10

	sources := []collector.Source{
		collector.NewCPUSource(nil),
		collector.NewCPUTempSource(nil),
		collector.NewMemorySource(nil),
		collector.NewDiskSource(filter, nil, nil),
		collector.NewSysInfoSource(),
	}
	if cfg.Display.ShowGPU {
		sources = append(sources, collector.NewGPUSource(nil, nil))
	}
	if cfg.Display.ShowNetwork {
		sources = append(sources, collector.NewNetSource(nil))
	}

	return NewWithRegistry(cfg, log, collector.NewRegistry(timeout, log, sources...))
}

// NewWithRegistry assembles an engine around a caller-built registry.
func NewWithRegistry(cfg *config.Config, log *slog.Logger, reg *collector.Registry) *Engine {
	return &Engine{
		registry: reg,
		cfg:      cfg,
		log:      log,
		CPUTemps: NewHistory(cfg.MaxHistoryPoints),
		GPUTemps: NewHistory(cfg.MaxHistoryPoints),
	}
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() *config.Config { return e.cfg }

// Base implements Ticker.
func (e *Engine) Base() *Engine { return e }

// Tick collects one snapshot and records its temperatures. The snapshot
// is complete even when sources failed; failures appear in Errors and
// as absent readings.
func (e *Engine) Tick(ctx context.Context) *model.Snapshot {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	snap := &model.Snapshot{Timestamp: time.Now()}
	if e.registry != nil {
		e.registry.Collect(ctx, snap)
	}

	e.CPUTemps.Push(snap.CPUTemp)
	if e.cfg.Display.ShowGPU {
		e.GPUTemps.Push(snap.GPU.Temp)
	}
	return snap
}
