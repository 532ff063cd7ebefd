// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package supervisor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ned0000/servmgmtd/internal/procdriver"
	"github.com/ned0000/servmgmtd/internal/registry"
)

func newTestEngine(t *testing.T, maxRetry int) (*Engine, *registry.Table) {
	t.Helper()
	table := registry.NewTable()
	engine := NewEngine(table, maxRetry, NewTimerWheel(), nil)
	return engine, table
}

func TestEngine_StartAutomatic_OnlySpawnsAutomaticStoppedServices(t *testing.T) {
	engine, table := newTestEngine(t, 3)

	auto := &registry.Record{Name: "auto", CmdPath: "/bin/sleep", CmdParam: "60", StartupType: registry.StartupAutomatic}
	manual := &registry.Record{Name: "manual", CmdPath: "/bin/sleep", CmdParam: "60", StartupType: registry.StartupManual}
	require.NoError(t, table.Add(auto))
	require.NoError(t, table.Add(manual))

	engine.StartAutomatic()

	assert.Equal(t, registry.StatusRunning, auto.Status)
	assert.NotNil(t, auto.Proc)
	assert.Equal(t, registry.StatusStopped, manual.Status)
	assert.Nil(t, manual.Proc)

	_ = auto.Proc.Stop(context.Background(), time.Second)
}

func TestEngine_StartLocked_SpawnFailureSetsError(t *testing.T) {
	engine, table := newTestEngine(t, 3)
	rec := &registry.Record{Name: "bad", CmdPath: "/no/such/binary", StartupType: registry.StartupManual}
	require.NoError(t, table.Add(rec))

	engine.mu.Lock()
	err := engine.startLocked(rec)
	engine.mu.Unlock()

	require.Error(t, err)
	assert.Equal(t, registry.StatusError, rec.Status)
	assert.Nil(t, rec.Proc)
}

func TestEngine_StartLocked_DoesNotResetRetryCountOnRespawn(t *testing.T) {
	engine, table := newTestEngine(t, 5)
	rec := &registry.Record{Name: "loopy", CmdPath: "/bin/true", StartupType: registry.StartupManual, RetryCount: 2}
	require.NoError(t, table.Add(rec))

	engine.mu.Lock()
	err := engine.startLocked(rec)
	engine.mu.Unlock()

	require.NoError(t, err)
	assert.Equal(t, 2, rec.RetryCount)
}

func TestEngine_StartLocked_ResetsRetryCountAfterSustainedRun(t *testing.T) {
	original := stableRunDuration
	stableRunDuration = 20 * time.Millisecond
	defer func() { stableRunDuration = original }()

	engine, table := newTestEngine(t, 5)
	rec := &registry.Record{Name: "recovering", CmdPath: "/bin/sleep", CmdParam: "60", StartupType: registry.StartupManual, RetryCount: 3}
	require.NoError(t, table.Add(rec))

	go func() { _ = engine.timers.Serve(context.Background()) }()

	engine.mu.Lock()
	err := engine.startLocked(rec)
	engine.mu.Unlock()
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		engine.mu.Lock()
		defer engine.mu.Unlock()
		return rec.RetryCount == 0
	}, time.Second, 5*time.Millisecond)

	_ = rec.Proc.Stop(context.Background(), time.Second)
}

func TestEngine_HandleExit_RetryCountNeverExceedsCap(t *testing.T) {
	engine, table := newTestEngine(t, 2)
	rec := &registry.Record{Name: "capped", Status: registry.StatusRunning, Proc: &procdriver.Process{}, RetryCount: 2}
	require.NoError(t, table.Add(rec))

	engine.handleExit(rec, procdriver.Result{ExitCode: 1, Signalled: false})

	assert.Equal(t, registry.StatusError, rec.Status)
	assert.Equal(t, 2, rec.RetryCount)
	assert.LessOrEqual(t, rec.RetryCount, 2)
}

func TestEngine_HandleExit_MaxRetryZeroGoesDirectlyToError(t *testing.T) {
	engine, table := newTestEngine(t, 0)
	rec := &registry.Record{Name: "nocap", Status: registry.StatusRunning, Proc: &procdriver.Process{}}
	require.NoError(t, table.Add(rec))

	engine.handleExit(rec, procdriver.Result{ExitCode: 1, Signalled: false})

	assert.Equal(t, registry.StatusError, rec.Status)
	assert.Equal(t, 0, rec.RetryCount)
	assert.Equal(t, 0, engine.timers.Pending())
}

func TestEngine_StopLocked_AwaitingRetrySentinelStopsImmediately(t *testing.T) {
	engine, table := newTestEngine(t, 3)
	rec := &registry.Record{Name: "pending", Status: registry.StatusRunning, Proc: nil}
	require.NoError(t, table.Add(rec))

	engine.mu.Lock()
	err := engine.stopLocked(rec, time.Second)
	engine.mu.Unlock()

	require.NoError(t, err)
	assert.Equal(t, registry.StatusStopped, rec.Status)
}

func TestEngine_StopLocked_AlreadyStoppedReturnsAlreadyInTargetState(t *testing.T) {
	engine, table := newTestEngine(t, 3)
	rec := &registry.Record{Name: "idle", Status: registry.StatusStopped}
	require.NoError(t, table.Add(rec))

	engine.mu.Lock()
	err := engine.stopLocked(rec, time.Second)
	engine.mu.Unlock()

	require.Error(t, err)
}

func TestEngine_HandleExit_CleanExitStopsWithoutRetry(t *testing.T) {
	engine, table := newTestEngine(t, 3)
	rec := &registry.Record{Name: "clean", Status: registry.StatusRunning, Proc: &procdriver.Process{}}
	require.NoError(t, table.Add(rec))

	engine.handleExit(rec, procdriver.Result{ExitCode: 0, Signalled: false})

	assert.Equal(t, registry.StatusStopped, rec.Status)
	assert.Equal(t, 0, rec.RetryCount)
}

func TestEngine_HandleExit_NonzeroExitSchedulesRetry(t *testing.T) {
	engine, table := newTestEngine(t, 3)
	rec := &registry.Record{Name: "crashy", Status: registry.StatusRunning, Proc: &procdriver.Process{}}
	require.NoError(t, table.Add(rec))

	engine.handleExit(rec, procdriver.Result{ExitCode: 1, Signalled: false})

	assert.Equal(t, registry.StatusRunning, rec.Status)
	assert.Nil(t, rec.Proc)
	assert.Equal(t, 1, rec.RetryCount)
	assert.Equal(t, 1, engine.timers.Pending())
}

func TestEngine_HandleExit_ExhaustsRetriesIntoError(t *testing.T) {
	engine, table := newTestEngine(t, 1)
	rec := &registry.Record{Name: "doomed", Status: registry.StatusRunning, Proc: &procdriver.Process{}, RetryCount: 1}
	require.NoError(t, table.Add(rec))

	engine.handleExit(rec, procdriver.Result{ExitCode: 1, Signalled: false})

	assert.Equal(t, registry.StatusError, rec.Status)
	assert.Equal(t, 0, engine.timers.Pending())
}

func TestEngine_HandleExit_StoppingAlwaysGoesToStopped(t *testing.T) {
	engine, table := newTestEngine(t, 3)
	rec := &registry.Record{Name: "stopping", Status: registry.StatusStopping, Proc: &procdriver.Process{}}
	require.NoError(t, table.Add(rec))

	engine.handleExit(rec, procdriver.Result{ExitCode: 1, Signalled: true})

	assert.Equal(t, registry.StatusStopped, rec.Status)
	assert.Equal(t, 0, rec.RetryCount)
}

func TestEngine_ReapOnce_FindsCollectedExit(t *testing.T) {
	engine, table := newTestEngine(t, 3)
	rec := &registry.Record{Name: "quick", CmdPath: "/bin/true", StartupType: registry.StartupManual}
	require.NoError(t, table.Add(rec))

	engine.mu.Lock()
	require.NoError(t, engine.startLocked(rec))
	engine.mu.Unlock()

	require.Eventually(t, func() bool {
		return engine.reapOnce()
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, registry.StatusStopped, rec.Status)
}

func TestEngine_Shutdown_TerminatesAwaitingRetryService(t *testing.T) {
	engine, table := newTestEngine(t, 3)
	rec := &registry.Record{Name: "waiting", Status: registry.StatusRunning, Proc: nil}
	require.NoError(t, table.Add(rec))

	engine.Shutdown(time.Second)

	assert.Equal(t, registry.StatusTerminated, rec.Status)
}
