// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package supervisor

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Reaper turns SIGCHLD into reap work on the engine, deferred out of
// signal context exactly as spec.md §4.3 requires: the signal only wakes
// the loop, which then drains every collected exit before going back to
// sleep. The actual wait4 syscall already happened inside each Process's
// own goroutine (see procdriver): os/exec owns that call, so reapOnce
// only notices and dispatches rather than reaping a second time.
//
// SIGCHLD delivery and a given child's cmd.Wait() goroutine finishing are
// independent races: the signal can arrive before Process.Result() is
// ready, and nothing re-delivers it once coalesced, so a drain triggered
// solely by the signal can finish having reaped nothing. The loop also
// wakes on engine.wake, which startLocked's per-process exit watcher pokes
// only after that process's Done() channel has actually closed, so the
// drain it triggers is guaranteed to find a result.
type Reaper struct {
	engine *Engine
	sigCh  chan os.Signal
}

// NewReaper creates a Reaper bound to engine. It does not register the
// signal handler until Serve runs.
func NewReaper(engine *Engine) *Reaper {
	return &Reaper{engine: engine, sigCh: make(chan os.Signal, 1)}
}

// Serve registers for SIGCHLD and drains reapable exits until ctx is
// cancelled, at which point it stops listening for the signal (the
// equivalent of ignoreSignal(SIGCHLD) during shutdown). Implements
// suture.Service.
func (r *Reaper) Serve(ctx context.Context) error {
	signal.Notify(r.sigCh, syscall.SIGCHLD)
	defer signal.Stop(r.sigCh)

	r.drain()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.sigCh:
			r.drain()
		case <-r.engine.wake:
			r.drain()
		}
	}
}

// drain loops until a full scan finds nothing left to reap, so a single
// SIGCHLD that coalesced multiple child terminations is fully processed.
func (r *Reaper) drain() {
	for r.engine.reapOnce() {
	}
}
