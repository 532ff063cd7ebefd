// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package registry

import (
	"strings"
	"time"

	"github.com/ned0000/servmgmtd/internal/procdriver"
	"github.com/ned0000/servmgmtd/internal/ptree"
)

// Status is the service's current position in the supervisor state machine.
type Status string

const (
	StatusStopped    Status = "stopped"
	StatusStarting   Status = "starting"
	StatusRunning    Status = "running"
	StatusStopping   Status = "stopping"
	StatusError      Status = "error"
	StatusTerminated Status = "terminated"
)

// StartupType is the persisted launch policy. Unknown is a load-time-only
// value: it is never written back to the setting file.
type StartupType string

const (
	StartupAutomatic StartupType = "automatic"
	StartupManual    StartupType = "manual"
	StartupUnknown   StartupType = "unknown"
)

// ParseStartupType parses the XML startupType text. Any value other than
// "automatic" or "manual" is tolerated as Unknown rather than rejecting the
// whole record: see SPEC_FULL.md §4 item 1.
func ParseStartupType(s string) StartupType {
	switch s {
	case string(StartupAutomatic):
		return StartupAutomatic
	case string(StartupManual):
		return StartupManual
	default:
		return StartupUnknown
	}
}

// MaxServices is the hard cap on the number of declared services, matching
// the original JF_SERV_MAX_NUM_OF_SERV bound.
const MaxServices = 30

// MaxNameLength is the maximum byte length of a service name.
const MaxNameLength = 24

// Record is one managed service: its identity and launch spec (loaded from
// the setting file), its current supervised runtime state, and its binding
// back to the property tree for in-place startup-type persistence.
type Record struct {
	Name        string
	Description string
	Version     string
	CmdPath     string
	CmdParam    string
	StartupType StartupType

	Status     Status
	RetryCount int
	StartedAt  time.Time

	// Proc is valid only when Status is Running or Stopping.
	Proc *procdriver.Process

	// startupTypeNode is the opaque property-tree node binding used by
	// changeStartupType to mutate the XML document in place.
	startupTypeNode *ptree.Node
}

// BindStartupTypeNode associates this record with the tree node holding its
// startupType text, so a later startup-type change can be written back
// without reparsing the file.
func (r *Record) BindStartupTypeNode(n *ptree.Node) {
	r.startupTypeNode = n
}

// StartupTypeNode returns the bound property-tree node, or nil if this
// record was never bound (e.g. constructed purely in memory in a test).
func (r *Record) StartupTypeNode() *ptree.Node {
	return r.startupTypeNode
}

// CommandLine joins the command path and arguments with a single space, no
// shell interpretation and no quoting, matching the original startOne. It is
// a display form only; Args is what actually gets exec'd.
func (r *Record) CommandLine() string {
	if r.CmdParam == "" {
		return r.CmdPath
	}
	return r.CmdPath + " " + r.CmdParam
}

// Args splits CmdParam on whitespace into an argument vector. There is no
// shell involved, so there is no quoting: an argument containing a space
// cannot be expressed in the setting file.
func (r *Record) Args() []string {
	if r.CmdParam == "" {
		return nil
	}
	return strings.Fields(r.CmdParam)
}
