// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package metrics provides Prometheus instrumentation for the supervised
service population.

# Metrics Endpoint

Exposed at /metrics on the admin HTTP surface, in Prometheus text format,
when the surface is enabled:

	curl http://localhost:9090/metrics

# Available Metrics

  - servmgmt_service_status: 1 for the service's current status, 0 otherwise (gauge)
    Labels: service, status
  - servmgmt_service_restarts_total: restart attempts after an unexpected exit (counter)
    Labels: service
  - servmgmt_service_retry_count: current retry counter (gauge)
    Labels: service
  - servmgmt_reap_events_total: child-exit reap events processed (counter)
  - servmgmt_spawn_failures_total: os/exec start failures (counter)
    Labels: service
*/
package metrics
