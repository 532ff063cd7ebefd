// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind_RelativeToRoot(t *testing.T) {
	tree := NewTree("", "servMgmtSetting")
	tree.Root.AddChild("", "version", "1.0")
	global := tree.Root.AddChild("", "globalSetting", "")
	global.AddChild("", "maxFailureRetryCount", "3")

	node, ok := tree.Find("version")
	require.True(t, ok)
	assert.Equal(t, "1.0", node.Value)

	node, ok = tree.Find("globalSetting.maxFailureRetryCount")
	require.True(t, ok)
	assert.Equal(t, "3", node.Value)

	_, ok = tree.Find("globalSetting.nosuch")
	assert.False(t, ok)
}

func TestFind_EmptyPathReturnsRoot(t *testing.T) {
	tree := NewTree("", "root")
	node, ok := tree.Find("")
	require.True(t, ok)
	assert.Same(t, tree.Root, node)
}

func TestFindAll_MultipleSiblings(t *testing.T) {
	tree := NewTree("", "servMgmtSetting")
	services := tree.Root.AddChild("", "serviceSetting", "")
	a := services.AddChild("", "service", "")
	a.AddChild("", "name", "alpha")
	b := services.AddChild("", "service", "")
	b.AddChild("", "name", "beta")

	nodes := tree.FindAll("serviceSetting.service")
	require.Len(t, nodes, 2)

	name0, _ := nodes[0].Child("name")
	name1, _ := nodes[1].Child("name")
	assert.Equal(t, "alpha", name0.Value)
	assert.Equal(t, "beta", name1.Value)
}

func TestFindAll_NoMatchReturnsNil(t *testing.T) {
	tree := NewTree("", "root")
	assert.Nil(t, tree.FindAll("nosuch.path"))
}

func TestChild_NamespaceOptionalMatch(t *testing.T) {
	root := &Node{Name: "root"}
	root.AddChild("ns", "thing", "v")

	node, ok := root.Child("thing")
	require.True(t, ok)
	assert.Equal(t, "v", node.Value)

	node, ok = root.Child("ns:thing")
	require.True(t, ok)
	assert.Equal(t, "v", node.Value)

	_, ok = root.Child("other:thing")
	assert.False(t, ok)
}

func TestSetAttr_UpdatesExistingAttribute(t *testing.T) {
	n := &Node{Name: "x"}
	n.SetAttr("", "id", "1")
	n.SetAttr("", "id", "2")

	v, ok := n.Attr("id")
	require.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestIsLeaf(t *testing.T) {
	parent := &Node{Name: "p"}
	leaf := parent.AddChild("", "l", "v")

	assert.False(t, parent.IsLeaf())
	assert.True(t, leaf.IsLeaf())
}

func TestSetValue_NodeHandleStaysBound(t *testing.T) {
	tree := NewTree("", "servMgmtSetting")
	services := tree.Root.AddChild("", "serviceSetting", "")
	svc := services.AddChild("", "service", "")
	startup := svc.AddChild("", "startupType", "manual")

	ref := startup
	ref.SetValue("automatic")

	node, ok := tree.Find("serviceSetting.service")
	require.True(t, ok)
	st, ok := node.Child("startupType")
	require.True(t, ok)
	assert.Equal(t, "automatic", st.Value)
	assert.Same(t, ref, st)
}
