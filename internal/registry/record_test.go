// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ned0000/servmgmtd/internal/ptree"
)

func TestParseStartupType(t *testing.T) {
	assert.Equal(t, StartupAutomatic, ParseStartupType("automatic"))
	assert.Equal(t, StartupManual, ParseStartupType("manual"))
	assert.Equal(t, StartupUnknown, ParseStartupType("whatever"))
	assert.Equal(t, StartupUnknown, ParseStartupType(""))
}

func TestRecord_CommandLine(t *testing.T) {
	r := &Record{CmdPath: "/usr/bin/httpd", CmdParam: "-f /etc/httpd.conf"}
	assert.Equal(t, "/usr/bin/httpd -f /etc/httpd.conf", r.CommandLine())

	bare := &Record{CmdPath: "/usr/bin/httpd"}
	assert.Equal(t, "/usr/bin/httpd", bare.CommandLine())
}

func TestRecord_Args(t *testing.T) {
	r := &Record{CmdPath: "/usr/bin/httpd", CmdParam: "-f  /etc/httpd.conf   -D FOREGROUND"}
	assert.Equal(t, []string{"-f", "/etc/httpd.conf", "-D", "FOREGROUND"}, r.Args())

	bare := &Record{CmdPath: "/usr/bin/httpd"}
	assert.Nil(t, bare.Args())
}

func TestRecord_StartupTypeNodeBinding(t *testing.T) {
	r := &Record{Name: "web"}
	assert.Nil(t, r.StartupTypeNode())

	n := &ptree.Node{Name: "startupType", Value: "automatic"}
	r.BindStartupTypeNode(n)
	assert.Same(t, n, r.StartupTypeNode())
}
