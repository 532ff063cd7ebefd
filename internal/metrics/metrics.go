// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the supervised-service population. Exposed at
// /metrics on the admin HTTP surface when it is enabled.
var (
	// ServiceStatus reports 1 for the service's current status and 0 for
	// every other status value, so a PromQL `sum by (status)` renders the
	// live state-machine distribution.
	ServiceStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "servmgmt_service_status",
			Help: "1 if the service is currently in this status, 0 otherwise",
		},
		[]string{"service", "status"},
	)

	// ServiceRestartsTotal counts every Starting re-entry caused by an
	// unexpected (nonzero or signalled) exit.
	ServiceRestartsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servmgmt_service_restarts_total",
			Help: "Total number of restart attempts following an unexpected exit",
		},
		[]string{"service"},
	)

	// ServiceRetryCount is the current retry counter used for linear
	// backoff; it resets to zero once a service has stayed Running on one
	// spawn for the engine's stable-run window.
	ServiceRetryCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "servmgmt_service_retry_count",
			Help: "Current retry attempt counter for the service",
		},
		[]string{"service"},
	)

	// ReapEventsTotal counts child-exit reap events processed by the reap
	// loop, including cases where a single SIGCHLD coalesced multiple exits.
	ReapEventsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "servmgmt_reap_events_total",
			Help: "Total number of child-exit reap events processed",
		},
	)

	// SpawnFailuresTotal counts os/exec start failures (distinct from a
	// process starting then exiting).
	SpawnFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servmgmt_spawn_failures_total",
			Help: "Total number of failures to spawn a service's process",
		},
		[]string{"service"},
	)
)

// statusLabels lists every status value ServiceStatus tracks, so
// SetServiceStatus can zero out the ones the service is not currently in.
var statusLabels = []string{"stopped", "starting", "running", "stopping", "error", "terminated"}

// SetServiceStatus sets ServiceStatus to 1 for the given status and 0 for
// every other known status, keeping the gauge vector consistent even as a
// service moves through the state machine.
func SetServiceStatus(service, status string) {
	for _, label := range statusLabels {
		if label == status {
			ServiceStatus.WithLabelValues(service, label).Set(1)
		} else {
			ServiceStatus.WithLabelValues(service, label).Set(0)
		}
	}
}
