// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ptree

import "strings"

// Attr is a single node attribute. Attrs on a Node are kept in the order
// they were added, mirroring the original XML's attribute order.
type Attr struct {
	Namespace string
	Name      string
	Value     string
}

// Node is one element of the property tree. The root node's Parent is nil.
type Node struct {
	Namespace string
	Name      string
	Value     string
	Attrs     []Attr
	Parent    *Node
	children  []*Node
}

// Tree is a property tree: a single root node plus the raw text of the XML
// declaration it was parsed from (preserved verbatim on Write).
type Tree struct {
	Root    *Node
	Decl    string
	hasDecl bool
}

// NewTree creates a tree with a single root node and no XML declaration.
func NewTree(namespace, name string) *Tree {
	return &Tree{Root: &Node{Namespace: namespace, Name: name}}
}

// AddChild appends a new child node to n and returns it.
func (n *Node) AddChild(namespace, name, value string) *Node {
	child := &Node{Namespace: namespace, Name: name, Value: value, Parent: n}
	n.children = append(n.children, child)
	return child
}

// Children returns n's children, in document order. The returned slice must
// not be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// IsLeaf reports whether n has no children. A leaf's Value is significant on
// serialisation; a non-leaf's Value is ignored.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Child returns the first child matching name (namespace-optional — a bare
// name matches any namespace), and whether a match was found.
func (n *Node) Child(name string) (*Node, bool) {
	ns, bare := splitNamespace(name)
	for _, c := range n.children {
		if matches(c, ns, bare) {
			return c, true
		}
	}
	return nil, false
}

// ChildrenNamed returns every child matching name, in document order.
func (n *Node) ChildrenNamed(name string) []*Node {
	ns, bare := splitNamespace(name)
	var out []*Node
	for _, c := range n.children {
		if matches(c, ns, bare) {
			out = append(out, c)
		}
	}
	return out
}

// Attr returns the value of the first attribute matching name
// (namespace-optional), and whether a match was found.
func (n *Node) Attr(name string) (string, bool) {
	ns, bare := splitNamespace(name)
	for _, a := range n.Attrs {
		if (ns == "" || a.Namespace == ns) && a.Name == bare {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr appends a new attribute, or updates the value of the first
// existing attribute with the same namespace and name.
func (n *Node) SetAttr(namespace, name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Namespace == namespace && n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Namespace: namespace, Name: name, Value: value})
}

// SetValue changes the node's value in place. The property-tree node handle
// itself (the *Node pointer) stays valid and bound to whatever logical
// field the caller is tracking — this is the mechanism settingstore uses to
// rewrite a service's startup-type in place without reparsing.
func (n *Node) SetValue(value string) {
	n.Value = value
}

// Find resolves a dotted path relative to the tree's root and returns the
// first matching node. An empty path returns the root.
func (t *Tree) Find(path string) (*Node, bool) {
	if path == "" {
		return t.Root, true
	}
	cur := t.Root
	for _, seg := range strings.Split(path, ".") {
		next, ok := cur.Child(seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// FindAll resolves a dotted path relative to the tree's root and returns
// every matching node — the last path segment may repeat, as with multiple
// <service> siblings under serviceSetting.
func (t *Tree) FindAll(path string) []*Node {
	if path == "" {
		return []*Node{t.Root}
	}
	segs := strings.Split(path, ".")
	cur := []*Node{t.Root}
	for _, seg := range segs {
		var next []*Node
		for _, c := range cur {
			next = append(next, c.ChildrenNamed(seg)...)
		}
		cur = next
		if len(cur) == 0 {
			return nil
		}
	}
	return cur
}

// Iterate calls fn for each direct child of n, stopping early if fn returns
// false.
func Iterate(n *Node, fn func(*Node) bool) {
	for _, c := range n.children {
		if !fn(c) {
			return
		}
	}
}

func matches(n *Node, ns, bareName string) bool {
	if n.Name != bareName {
		return false
	}
	return ns == "" || n.Namespace == ns
}

// splitNamespace splits a path segment of the form "ns:name" into its
// namespace and bare name. A segment with no colon has an empty namespace,
// meaning "match any namespace".
func splitNamespace(seg string) (ns, name string) {
	if i := strings.IndexByte(seg, ':'); i >= 0 {
		return seg[:i], seg[i+1:]
	}
	return "", seg
}
