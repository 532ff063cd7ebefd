// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package procdriver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAndWait_CleanExit(t *testing.T) {
	p := New("/bin/true", nil)
	require.NoError(t, p.Start(context.Background()))
	assert.Positive(t, p.PID())

	result, ok := p.Wait()
	require.True(t, ok)
	assert.Equal(t, 0, result.ExitCode)
	assert.False(t, result.Signalled)
	assert.NoError(t, result.Err)
	assert.False(t, p.Running())
}

func TestStartAndWait_NonzeroExit(t *testing.T) {
	p := New("/bin/false", nil)
	require.NoError(t, p.Start(context.Background()))

	result, ok := p.Wait()
	require.True(t, ok)
	assert.Equal(t, 1, result.ExitCode)
	assert.False(t, result.Signalled)
}

func TestStart_RejectsDoubleStart(t *testing.T) {
	p := New("/bin/sleep", []string{"5"})
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop(context.Background(), time.Second)

	err := p.Start(context.Background())
	assert.Error(t, err)
}

func TestStop_GracefulExitBeforeTimeout(t *testing.T) {
	p := New("/bin/sleep", []string{"60"})
	require.NoError(t, p.Start(context.Background()))
	assert.True(t, p.Running())

	err := p.Stop(context.Background(), 5*time.Second)
	require.NoError(t, err)
	assert.False(t, p.Running())

	result, ok := p.Result()
	require.True(t, ok)
	assert.True(t, result.Signalled)
}

func TestStop_OnAlreadyExitedProcessIsNoop(t *testing.T) {
	p := New("/bin/true", nil)
	require.NoError(t, p.Start(context.Background()))
	p.Wait()

	err := p.Stop(context.Background(), time.Second)
	assert.NoError(t, err)
}

func TestWait_BeforeStartReturnsNotOK(t *testing.T) {
	p := New("/bin/true", nil)
	_, ok := p.Wait()
	assert.False(t, ok)
}

func TestResult_WhileRunningReturnsNotOK(t *testing.T) {
	p := New("/bin/sleep", []string{"60"})
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop(context.Background(), time.Second)

	_, ok := p.Result()
	assert.False(t, ok)
}

func TestDone_ClosesOnExit(t *testing.T) {
	p := New("/bin/true", nil)
	require.NoError(t, p.Start(context.Background()))

	select {
	case <-p.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Done channel did not close")
	}
}
