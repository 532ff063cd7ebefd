// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ptree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Parse reads a well-formed XML document and builds a property tree from
// it. It returns an error wrapping the underlying xml.Decoder error when
// the document is not well-formed; callers that need to distinguish
// malformed-XML from missing-required-node should do so themselves (ptree
// has no notion of "required").
func Parse(r io.Reader) (*Tree, error) {
	dec := xml.NewDecoder(r)

	var tree *Tree
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target == "xml" {
				tree = &Tree{Decl: strings.TrimSpace(string(t.Inst)), hasDecl: true}
			}
		case xml.StartElement:
			node := &Node{Namespace: t.Name.Space, Name: t.Name.Local}
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{Namespace: a.Name.Space, Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if tree == nil {
					tree = &Tree{}
				}
				tree.Root = node
			} else {
				parent := stack[len(stack)-1]
				node.Parent = parent
				parent.children = append(parent.children, node)
			}
			stack = append(stack, node)
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Value += string(t)
			}
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if tree == nil || tree.Root == nil {
		return nil, fmt.Errorf("parse xml: document has no root element")
	}
	return tree, nil
}

// ParseString is a convenience wrapper around Parse for in-memory XML,
// mainly useful from tests.
func ParseString(s string) (*Tree, error) {
	return Parse(strings.NewReader(s))
}
