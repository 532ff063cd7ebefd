// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// SupervisorEventLogger emits the structured service/transition/error-category
// triples the supervisor engine produces on every state-machine move, so a
// log line always reads like:
//
//	service=web transition=Running->Starting error_category=SpawnFailed
type SupervisorEventLogger struct {
	logger zerolog.Logger
}

// NewSupervisorEventLogger creates an event logger backed by the global
// zerolog logger.
func NewSupervisorEventLogger() *SupervisorEventLogger {
	return &SupervisorEventLogger{
		logger: With().Str("component", "supervisor").Logger(),
	}
}

// NewSupervisorEventLoggerWithLogger creates an event logger backed by a
// specific zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSupervisorEventLoggerWithLogger(logger zerolog.Logger) *SupervisorEventLogger {
	return &SupervisorEventLogger{
		logger: logger.With().Str("component", "supervisor").Logger(),
	}
}

// Transition logs a state-machine move. errCategory is empty for a clean
// transition (e.g. an operator-initiated start/stop) and set to the error
// Kind's string form when the move was forced by a failure.
func (l *SupervisorEventLogger) Transition(service, from, to, errCategory string) {
	e := l.logger.Info().
		Str("service", service).
		Str("transition", from+"->"+to)
	if errCategory != "" {
		e = e.Str("error_category", errCategory)
	}
	e.Msg("")
}

// TransitionCtx is Transition with a context-derived correlation ID attached.
func (l *SupervisorEventLogger) TransitionCtx(ctx context.Context, service, from, to, errCategory string) {
	e := Ctx(ctx).Info().
		Str("service", service).
		Str("transition", from+"->"+to)
	if errCategory != "" {
		e = e.Str("error_category", errCategory)
	}
	e.Msg("")
}

// RetryScheduled logs that a restart has been scheduled after a delay.
func (l *SupervisorEventLogger) RetryScheduled(service string, attempt int, delaySeconds int) {
	l.logger.Info().
		Str("service", service).
		Int("retry_attempt", attempt).
		Int("retry_delay_seconds", delaySeconds).
		Msg("retry scheduled")
}

// RetriesExhausted logs that the retry budget has been spent and the
// service has moved to Error.
func (l *SupervisorEventLogger) RetriesExhausted(service string, maxRetries int) {
	l.logger.Warn().
		Str("service", service).
		Int("max_retries", maxRetries).
		Msg("retry budget exhausted")
}

// ReapEvent logs a single child-exit reap observation.
func (l *SupervisorEventLogger) ReapEvent(service string, exitCode int, signalled bool) {
	l.logger.Debug().
		Str("service", service).
		Int("exit_code", exitCode).
		Bool("signalled", signalled).
		Msg("child exit reaped")
}

// SpawnFailed logs a failure to start a service's process.
func (l *SupervisorEventLogger) SpawnFailed(service string, err error) {
	l.logger.Error().
		Str("service", service).
		Err(err).
		Msg("spawn failed")
}
