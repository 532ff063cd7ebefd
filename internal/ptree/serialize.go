// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ptree

import (
	"fmt"
	"io"
	"strings"
)

// defaultDecl is used when a tree was built in memory (not parsed from an
// existing document) and therefore has no original declaration to echo.
const defaultDecl = `version="1.0"`

// Write serialises the tree depth-first: a non-leaf node (one with
// children) is written as an open tag on its own line, its children
// indented two spaces deeper, then its close tag; a leaf node is written on
// a single line as an open tag, its text, and its close tag — or as an
// explicit empty element when its value is empty. Attribute order matches
// insertion order.
func Write(w io.Writer, t *Tree) error {
	decl := t.Decl
	if decl == "" {
		decl = defaultDecl
	}
	if _, err := fmt.Fprintf(w, "<?xml %s?>\n", decl); err != nil {
		return err
	}
	return writeNode(w, t.Root, 0)
}

func writeNode(w io.Writer, n *Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	tag := n.Name
	if n.Namespace != "" {
		tag = n.Namespace + ":" + n.Name
	}

	var attrs strings.Builder
	for _, a := range n.Attrs {
		attrName := a.Name
		if a.Namespace != "" {
			attrName = a.Namespace + ":" + a.Name
		}
		fmt.Fprintf(&attrs, " %s=\"%s\"", attrName, escapeAttr(a.Value))
	}

	if n.IsLeaf() {
		_, err := fmt.Fprintf(w, "%s<%s%s>%s</%s>\n", indent, tag, attrs.String(), escapeText(n.Value), tag)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s<%s%s>\n", indent, tag, attrs.String()); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := writeNode(w, c, depth+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s</%s>\n", indent, tag)
	return err
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;")
	return r.Replace(s)
}
