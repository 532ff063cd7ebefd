// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package procdriver spawns and terminates a single OS child process on
// behalf of the supervisor engine. A Process owns the one background
// goroutine that calls exec.Cmd.Wait, so reaping always happens through
// Go's own wait4 call rather than a second, racing one; the supervisor's
// SIGCHLD-driven reap loop learns of exits by selecting on Done, not by
// calling wait itself.
package procdriver
