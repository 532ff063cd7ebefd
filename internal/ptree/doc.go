// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package ptree implements a generic, attributed property tree backed by XML:
a mutable tree of nodes, each carrying an optional namespace, a name, a
value, an ordered list of attributes, and child nodes.

It is deliberately generic — it knows nothing about service records or
startup types — so that the setting store built on top of it
(internal/settingstore) only has to describe dotted node paths, not an XML
grammar.

# Paths

Find and FindAll take a dotted path relative to the tree's root, e.g.
"globalSetting.maxFailureRetryCount". An empty path returns the root. A
path segment may carry a namespace prefix ("ns:name"); a bare name matches
a node in any namespace (or none).

# Serialisation

Write walks the tree depth-first with two-space-per-level indentation. A
node with children is written across multiple lines, its own value (if
any) ignored; a childless node is written as a single line, with its text
content between open and close tags, or as an explicit empty element
(<name></name>, never self-closing) when its value is empty.
*/
package ptree
