// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package supervisor

import (
	"time"

	"github.com/ned0000/servmgmtd/internal/registry"
	"github.com/ned0000/servmgmtd/internal/servmgmterr"
	"github.com/ned0000/servmgmtd/internal/settingstore"
)

// ServiceInfo is the read-only snapshot the Management Facade hands back ,
// never a reference into the live Record, so a caller cannot observe (or
// cause) a torn read of engine-mutated state.
type ServiceInfo struct {
	Name        string
	Description string
	Version     string
	Status      registry.Status
	StartupType registry.StartupType
	RetryCount  int
	StartedAt   time.Time
}

// Facade is the Management API: the four operator-facing operations plus
// list, all implemented as local function calls per spec.md's explicit
// no-wire-protocol scope.
type Facade struct {
	engine      *Engine
	table       *registry.Table
	store       *settingstore.Document
	stopTimeout time.Duration
}

// NewFacade creates a Facade over engine and table, persisting startup-type
// changes through store and bounding graceful stops at stopTimeout.
func NewFacade(engine *Engine, table *registry.Table, store *settingstore.Document, stopTimeout time.Duration) *Facade {
	return &Facade{engine: engine, table: table, store: store, stopTimeout: stopTimeout}
}

func toServiceInfo(rec *registry.Record) ServiceInfo {
	info := ServiceInfo{
		Name:        rec.Name,
		Description: rec.Description,
		Version:     rec.Version,
		Status:      rec.Status,
		StartupType: rec.StartupType,
		RetryCount:  rec.RetryCount,
	}
	// StartedAt stays zero unless a live process is Running.
	if rec.Status == registry.StatusRunning && rec.Proc != nil {
		info.StartedAt = rec.StartedAt
	}
	return info
}

// ListServices returns a snapshot of every registered service, in
// declaration order.
func (f *Facade) ListServices() []ServiceInfo {
	f.engine.mu.Lock()
	defer f.engine.mu.Unlock()

	out := make([]ServiceInfo, 0, f.table.Len())
	for _, rec := range f.table.List() {
		out = append(out, toServiceInfo(rec))
	}
	return out
}

// GetService returns a snapshot of one service, or ServiceNotFound.
func (f *Facade) GetService(name string) (ServiceInfo, error) {
	f.engine.mu.Lock()
	defer f.engine.mu.Unlock()

	rec, ok := f.table.Get(name)
	if !ok {
		return ServiceInfo{}, servmgmterr.NewForService(servmgmterr.ServiceNotFound, name, "no such service")
	}
	return toServiceInfo(rec), nil
}

// StartService spawns name if it is not already Running. Starting an
// already-Running service is a no-op success (AlreadyInTargetState, mapped
// to success here). The retry counter is not reset by an operator-initiated
// start: it shares the retry budget with the supervisor's own restarts.
func (f *Facade) StartService(name string) error {
	f.engine.mu.Lock()
	defer f.engine.mu.Unlock()

	rec, ok := f.table.Get(name)
	if !ok {
		return servmgmterr.NewForService(servmgmterr.ServiceNotFound, name, "no such service")
	}
	if rec.Status == registry.StatusRunning {
		return nil
	}
	return f.engine.startLocked(rec)
}

// StopService terminates name if it is Running. Stopping a service already
// in Error or Stopped is a no-op success.
func (f *Facade) StopService(name string) error {
	f.engine.mu.Lock()
	defer f.engine.mu.Unlock()

	rec, ok := f.table.Get(name)
	if !ok {
		return servmgmterr.NewForService(servmgmterr.ServiceNotFound, name, "no such service")
	}
	err := f.engine.stopLocked(rec, f.stopTimeout)
	if servmgmterr.Is(err, servmgmterr.AlreadyInTargetState) {
		return nil
	}
	return err
}

// SetStartupType changes name's startup mode and persists it. mode must be
// Automatic or Manual. A no-op if the mode is unchanged. On a persistence
// failure the in-memory change is rolled back and the error is returned.
func (f *Facade) SetStartupType(name string, mode registry.StartupType) error {
	f.engine.mu.Lock()
	defer f.engine.mu.Unlock()

	rec, ok := f.table.Get(name)
	if !ok {
		return servmgmterr.NewForService(servmgmterr.ServiceNotFound, name, "no such service")
	}
	if mode != registry.StartupAutomatic && mode != registry.StartupManual {
		return servmgmterr.NewForService(servmgmterr.InvalidParam, name, "startup type must be automatic or manual")
	}
	if rec.StartupType == mode {
		return nil
	}

	previous := rec.StartupType
	rec.StartupType = mode
	if err := f.store.ChangeStartupType(rec, mode); err != nil {
		rec.StartupType = previous
		return err
	}
	return nil
}
