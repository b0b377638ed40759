package collector

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/glasswing-io/sysdash/model"
)

// Source samples one family of metrics into the snapshot. Collect must
// honor ctx and return promptly after cancellation; a failing source
// returns an error and leaves its snapshot fields absent.
type Source interface {
	Name() string
	Collect(ctx context.Context, snap *model.Snapshot) error
}

// FailKind distinguishes why a source produced no data.
type FailKind int

const (
	// FailUnavailable: the backing sensor, file, or tool does not exist
	// on this host. Expected on many machines, logged at debug only.
	FailUnavailable FailKind = iota
	// FailToolError: an external tool was found but exited non-zero or
	// timed out.
	FailToolError
	// FailParseError: the tool or file produced output we could not read.
	FailParseError
)

func (k FailKind) String() string {
	switch k {
	case FailUnavailable:
		return "unavailable"
	case FailToolError:
		return "tool error"
	case FailParseError:
		return "parse error"
	}
	return "error"
}

// SourceError wraps a collection failure with its origin and kind.
type SourceError struct {
	Source string
	Kind   FailKind
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func errUnavailable(source string, err error) error {
	return &SourceError{Source: source, Kind: FailUnavailable, Err: err}
}

func errTool(source string, err error) error {
	return &SourceError{Source: source, Kind: FailToolError, Err: err}
}

func errParse(source string, err error) error {
	return &SourceError{Source: source, Kind: FailParseError, Err: err}
}

// Registry runs a fixed set of sources each tick. Sources run
// concurrently; the tick joins all of them before the snapshot is used.
type Registry struct {
	sources []Source
	timeout time.Duration
	log     *slog.Logger
}

// NewRegistry builds a registry. timeout bounds each source's Collect
// call so one stuck external tool cannot stall the refresh loop.
func NewRegistry(timeout time.Duration, log *slog.Logger, sources ...Source) *Registry {
	return &Registry{sources: sources, timeout: timeout, log: log}
}

// Register appends a source.
func (r *Registry) Register(s Source) {
	r.sources = append(r.sources, s)
}

// Collect runs every source against snap. Each failure is recorded in
// snap.Errors and logged; no failure aborts the tick or the other
// sources. Snapshot fields are disjoint per source, but Errors is
// shared, so appends go through a mutex.
func (r *Registry) Collect(ctx context.Context, snap *model.Snapshot) {
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	for _, s := range r.sources {
		s := s
		g.Go(func() error {
			cctx := ctx
			if r.timeout > 0 {
				var cancel context.CancelFunc
				cctx, cancel = context.WithTimeout(ctx, r.timeout)
				defer cancel()
			}

			err := r.collectOne(cctx, s, snap)
			if err == nil {
				return nil
			}

			var kind FailKind = FailToolError
			if se, ok := err.(*SourceError); ok {
				kind = se.Kind
			}
			if kind == FailUnavailable {
				r.log.Debug("source unavailable", "source", s.Name(), "err", err)
			} else {
				r.log.Warn("collection failed", "source", s.Name(), "err", err)
			}

			mu.Lock()
			snap.Errors = append(snap.Errors, fmt.Sprintf("%s: %s", s.Name(), kind))
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
}

// collectOne isolates a single source, converting panics to errors so a
// misbehaving parser cannot take down the process.
func (r *Registry) collectOne(ctx context.Context, s Source, snap *model.Snapshot) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%s: panic: %v", s.Name(), p)
		}
	}()
	return s.Collect(ctx, snap)
}
