// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package supervisor is the Supervisor Engine and Management Facade: it
drives every declared service through Stopped/Starting/Running/Stopping/
Error/Terminated, reaps child exits, schedules delayed restarts through a
cooperative timer wheel, and exposes the five operator-facing operations
(list, get, start, stop, set-startup-type) as local Go calls.

# Process tree

	RootSupervisor ("servmgmtd")
	├── RuntimeSupervisor ("runtime-layer")
	│   ├── Reaper        (SIGCHLD -> drain exits -> Engine.handleExit)
	│   └── TimerWheel     (delayed restarts)
	└── APISupervisor ("api-layer")
	    └── admin HTTP server (optional, see internal/adminapi)

The runtime layer is always present; the API layer is empty unless the
admin HTTP surface is configured. A crash restarting the HTTP listener
never touches service supervision, and vice versa.

# Engine

Engine holds the one supervisor-wide mutex spec.md §5 requires: every
mutation of a Record's runtime or persistent fields happens with it held.
Start, Stop, and SetStartupType all funnel through Engine or the Setting
Store it and the Facade share.

# Retry cadence

The Nth consecutive retry waits N-1 seconds: the first retry is immediate,
the second waits one second, and so on, up to maxFailureRetryCount. A
service awaiting a delayed retry keeps Status Running (not a separate
state) with a nil process handle: that is the "awaiting restart" sentinel
a stop request can still observe and act on during the wait.

# Exit classification

A clean exit(0) moves a Running service to Stopped without retrying,
distinguishing it from a nonzero-exit or signalled death, which always
attempts a restart under the cap. See DESIGN.md for why this departs from
the original's "treat all exits identically" behaviour.
*/
package supervisor
