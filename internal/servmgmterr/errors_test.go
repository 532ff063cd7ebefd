// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package servmgmterr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_MatchesDirectError(t *testing.T) {
	err := New(ServiceNotFound, "no such service")
	assert.Equal(t, ServiceNotFound, KindOf(err))
}

func TestKindOf_MatchesWrappedError(t *testing.T) {
	inner := New(SpawnFailed, "exec: no such file")
	outer := errors.New("boot failed")
	_ = outer

	wrapped := Wrap(SpawnFailed, inner, "starting web")
	assert.Equal(t, SpawnFailed, KindOf(wrapped))
}

func TestKindOf_UnrelatedErrorReturnsEmptyKind(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain error")))
}

func TestIs(t *testing.T) {
	err := NewForService(PersistFailed, "web", "write failed")
	assert.True(t, Is(err, PersistFailed))
	assert.False(t, Is(err, InvalidParam))
}

func TestError_MessageIncludesServiceAndCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapForService(SpawnFailed, "web", cause, "exec failed")

	msg := err.Error()
	assert.Contains(t, msg, "spawn_failed")
	assert.Contains(t, msg, "web")
	assert.Contains(t, msg, "permission denied")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(PersistFailed, cause, "save")
	assert.Same(t, cause, errors.Unwrap(err))
}
