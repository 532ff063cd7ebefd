// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package adminapi exposes the Management Facade over local HTTP: list,
// inspect, start, stop and reconfigure services, plus a Prometheus scrape
// endpoint. It is entirely optional: a daemon with an empty admin listen
// address never constructs this package's server at all, so there is no
// wire protocol to speak of when the surface is disabled.
package adminapi
