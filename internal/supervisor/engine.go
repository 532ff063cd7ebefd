// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package supervisor

import (
	"context"
	"sync"
	"time"

	"github.com/ned0000/servmgmtd/internal/logging"
	"github.com/ned0000/servmgmtd/internal/metrics"
	"github.com/ned0000/servmgmtd/internal/procdriver"
	"github.com/ned0000/servmgmtd/internal/registry"
	"github.com/ned0000/servmgmtd/internal/servmgmterr"
)

// stableRunDuration is how long a service must stay Running on one spawn
// before its retry counter is cleared. It is a var, not a const, so tests
// can shorten it rather than sleeping for the production value.
var stableRunDuration = 10 * time.Second

// Engine drives every service record through its state machine. The
// supervisor-wide mutex it holds is the one synchronization point spec.md
// §5 requires: every mutation of persistent or runtime record fields
// happens with mu held.
type Engine struct {
	mu       sync.Mutex
	table    *registry.Table
	maxRetry int
	timers   *TimerWheel
	events   *logging.SupervisorEventLogger
	wake     chan struct{}
}

// NewEngine creates an Engine bound to table, capping consecutive retries
// at maxRetry and scheduling delayed restarts on timers.
func NewEngine(table *registry.Table, maxRetry int, timers *TimerWheel, events *logging.SupervisorEventLogger) *Engine {
	if events == nil {
		events = logging.NewSupervisorEventLogger()
	}
	return &Engine{table: table, maxRetry: maxRetry, timers: timers, events: events, wake: make(chan struct{}, 1)}
}

// pokeWake nudges the reap loop awake without blocking. It is called by the
// per-process exit watcher startLocked installs on every spawn, so a
// collected exit is never missed even when SIGCHLD races the child's own
// goroutine finishing cmd.Wait().
func (e *Engine) pokeWake() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// StartAutomatic spawns every Stopped service whose startup type is
// Automatic. It is meant to run once at boot, after the table is built.
func (e *Engine) StartAutomatic() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, rec := range e.table.List() {
		if rec.StartupType == registry.StartupAutomatic && rec.Status == registry.StatusStopped {
			_ = e.startLocked(rec)
		}
	}
}

// startLocked spawns rec's process. Callers must hold e.mu.
func (e *Engine) startLocked(rec *registry.Record) error {
	from := string(rec.Status)
	rec.Status = registry.StatusStarting

	proc := procdriver.New(rec.CmdPath, rec.Args())
	if err := proc.Start(context.Background()); err != nil {
		rec.Status = registry.StatusError
		rec.Proc = nil
		metrics.SpawnFailuresTotal.WithLabelValues(rec.Name).Inc()
		metrics.SetServiceStatus(rec.Name, string(registry.StatusError))
		e.events.SpawnFailed(rec.Name, err)
		e.events.Transition(rec.Name, from, string(registry.StatusError), string(servmgmterr.SpawnFailed))
		return servmgmterr.WrapForService(servmgmterr.SpawnFailed, rec.Name, err, "spawn failed")
	}

	rec.Proc = proc
	rec.Status = registry.StatusRunning
	rec.StartedAt = time.Now()
	metrics.SetServiceStatus(rec.Name, string(registry.StatusRunning))
	e.events.Transition(rec.Name, from, string(registry.StatusRunning), "")

	go func() {
		<-proc.Done()
		e.pokeWake()
	}()

	// retry_count is reset only after a sustained Running, not on every
	// respawn: a crash-loop must keep accumulating across the burst (see
	// handleExit), and an operator-initiated start shares the same budget.
	e.timers.Schedule(stableRunDuration, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if rec.Status == registry.StatusRunning && rec.Proc == proc && rec.RetryCount != 0 {
			rec.RetryCount = 0
			metrics.ServiceRetryCount.WithLabelValues(rec.Name).Set(0)
		}
	})
	return nil
}

// stopLocked requests termination of rec's process. It returns promptly:
// the actual SIGTERM-then-SIGKILL sequence runs in a background goroutine,
// and the reap loop observes the eventual exit. Callers must hold e.mu.
func (e *Engine) stopLocked(rec *registry.Record, timeout time.Duration) error {
	switch rec.Status {
	case registry.StatusRunning:
		if rec.Proc == nil {
			// Awaiting a delayed retry: cancel it in place, nothing to signal.
			rec.Status = registry.StatusStopped
			metrics.SetServiceStatus(rec.Name, string(registry.StatusStopped))
			e.events.Transition(rec.Name, string(registry.StatusRunning), string(registry.StatusStopped), "")
			return nil
		}
		proc := rec.Proc
		rec.Status = registry.StatusStopping
		metrics.SetServiceStatus(rec.Name, string(registry.StatusStopping))
		e.events.Transition(rec.Name, string(registry.StatusRunning), string(registry.StatusStopping), "")
		go func() {
			_ = proc.Stop(context.Background(), timeout)
		}()
		return nil
	case registry.StatusStopped, registry.StatusError, registry.StatusTerminated:
		return servmgmterr.NewForService(servmgmterr.AlreadyInTargetState, rec.Name, "service already stopped")
	default:
		return servmgmterr.NewForService(servmgmterr.AlreadyInTargetState, rec.Name, "stop already in progress")
	}
}

// handleExit processes one collected process exit. It is called by the
// reap loop, never directly by a management operation.
func (e *Engine) handleExit(rec *registry.Record, result procdriver.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if rec.Status != registry.StatusRunning && rec.Status != registry.StatusStopping {
		return
	}

	wasStopping := rec.Status == registry.StatusStopping
	rec.Proc = nil
	e.events.ReapEvent(rec.Name, result.ExitCode, result.Signalled)

	if wasStopping {
		rec.Status = registry.StatusStopped
		metrics.SetServiceStatus(rec.Name, string(registry.StatusStopped))
		e.events.Transition(rec.Name, string(registry.StatusStopping), string(registry.StatusStopped), "")
		return
	}

	if result.ExitCode == 0 && !result.Signalled {
		// Deliberate deviation from the original's "treat all exits
		// identically": a clean exit(0) is not restarted.
		rec.Status = registry.StatusStopped
		metrics.SetServiceStatus(rec.Name, string(registry.StatusStopped))
		e.events.Transition(rec.Name, string(registry.StatusRunning), string(registry.StatusStopped), "")
		return
	}

	if rec.RetryCount >= e.maxRetry {
		rec.Status = registry.StatusError
		metrics.SetServiceStatus(rec.Name, string(registry.StatusError))
		metrics.ServiceRetryCount.WithLabelValues(rec.Name).Set(float64(rec.RetryCount))
		e.events.RetriesExhausted(rec.Name, e.maxRetry)
		e.events.Transition(rec.Name, string(registry.StatusRunning), string(registry.StatusError), "")
		return
	}

	rec.RetryCount++
	delay := time.Duration(rec.RetryCount-1) * time.Second
	metrics.ServiceRestartsTotal.WithLabelValues(rec.Name).Inc()
	metrics.ServiceRetryCount.WithLabelValues(rec.Name).Set(float64(rec.RetryCount))
	e.events.RetryScheduled(rec.Name, rec.RetryCount, int(delay/time.Second))
	// Status stays Running: the sentinel meaning "awaiting restart": so a
	// stop request during the wait is honoured by stopLocked above.

	e.timers.Schedule(delay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if rec.Status != registry.StatusRunning {
			return
		}
		_ = e.startLocked(rec)
	})
}

// reapOnce scans every currently-running record once for a collected exit
// and, if one is found, dispatches it. It returns false once a full scan
// finds nothing new, which is the drained loop's stopping condition.
func (e *Engine) reapOnce() bool {
	e.mu.Lock()
	var rec *registry.Record
	var result procdriver.Result
	for _, r := range e.table.List() {
		if r.Proc == nil {
			continue
		}
		if res, ok := r.Proc.Result(); ok {
			rec, result = r, res
			break
		}
	}
	e.mu.Unlock()

	if rec == nil {
		return false
	}
	metrics.ReapEventsTotal.Inc()
	e.handleExit(rec, result)
	return true
}

// Shutdown marks every Running service Terminated, stops the ones with a
// live process, and waits for those processes to exit until an overall
// deadline of timeout plus one second. A service already Stopping is left
// to its in-flight stop. After Shutdown returns, no record is Running.
func (e *Engine) Shutdown(timeout time.Duration) {
	e.mu.Lock()
	var stopping []*registry.Record
	for _, rec := range e.table.List() {
		if rec.Status == registry.StatusRunning && rec.Proc != nil {
			proc := rec.Proc
			rec.Status = registry.StatusTerminated
			metrics.SetServiceStatus(rec.Name, string(registry.StatusTerminated))
			stopping = append(stopping, rec)
			go func() {
				_ = proc.Stop(context.Background(), timeout)
			}()
		} else if rec.Status == registry.StatusRunning {
			rec.Status = registry.StatusTerminated
			metrics.SetServiceStatus(rec.Name, string(registry.StatusTerminated))
		}
	}
	e.mu.Unlock()

	deadline := time.Now().Add(timeout + time.Second)
	for _, rec := range stopping {
		proc := rec.Proc
		if proc == nil {
			continue
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			continue
		}
		select {
		case <-proc.Done():
		case <-time.After(remaining):
		}
	}
}
