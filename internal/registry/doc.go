// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package registry is the Service Table: an ordered, bounded collection of
// ServiceRecords, one per declared service, looked up by name. It owns no
// mutex of its own: the supervisor engine that mutates these records holds
// a single supervisor-wide lock, consistent with the XML setting file's
// "every persistent field changes under one lock" invariant.
package registry
