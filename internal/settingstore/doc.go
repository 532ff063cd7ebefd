// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package settingstore translates between the on-disk XML setting file and
// the in-memory property tree, and builds the Service Table from it. It
// owns the one persistent write path (Save, via temp-file-then-rename) and
// the one mutation that round-trips to disk today: changing a service's
// startup type.
package settingstore
