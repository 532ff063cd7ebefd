// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package servmgmterr defines the error taxonomy the supervisor's
// components surface: a small fixed set of Kinds rather than ad hoc
// sentinel values, so a caller can branch on "what category of failure is
// this" without string-matching error text.
package servmgmterr

import "errors"

// Kind categorises a servmgmtd error.
type Kind string

const (
	// MalformedSetting means the XML setting file is not well-formed.
	MalformedSetting Kind = "malformed_setting"
	// InvalidSetting means a required field is missing or out of range,
	// or a structural invariant (e.g. the 30-service cap) is violated.
	InvalidSetting Kind = "invalid_setting"
	// ServiceNotFound means a name did not match any registered service.
	ServiceNotFound Kind = "service_not_found"
	// InvalidParam means a caller passed a value outside the accepted set.
	InvalidParam Kind = "invalid_param"
	// SpawnFailed means the OS refused to create the child process.
	SpawnFailed Kind = "spawn_failed"
	// PersistFailed means a setting-file write failed; the caller is
	// expected to roll back whatever in-memory change it was persisting.
	PersistFailed Kind = "persist_failed"
	// AlreadyInTargetState is non-fatal: start/stop was called on a
	// service already in (or equivalent to) the requested state. Facade
	// callers map this to success rather than propagating it.
	AlreadyInTargetState Kind = "already_in_target_state"
)

// Error is a Kind-tagged error with an optional wrapped cause.
type Error struct {
	Kind    Kind
	Service string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Service != "" {
		msg += " service=" + e.Service
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewForService creates a service-scoped Error with no wrapped cause.
func NewForService(kind Kind, service, message string) *Error {
	return &Error{Kind: kind, Service: service, Message: message}
}

// Wrap creates an Error that wraps cause, preserving it for errors.Is /
// errors.As / errors.Unwrap.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// WrapForService is Wrap with a service name attached.
func WrapForService(kind Kind, service string, cause error, message string) *Error {
	return &Error{Kind: kind, Service: service, Message: message, Cause: cause}
}

// KindOf returns the Kind of err if it (or something it wraps) is an
// *Error, and the zero Kind otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err's Kind (or something it wraps) equals kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
