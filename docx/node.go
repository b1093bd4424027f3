// seehuhn.de/go/anchor - a library for anchoring comments in documents
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package docx

import (
	"bytes"
	"encoding/xml"

	"github.com/antchfx/xmlquery"
)

// This file contains helpers for building and rearranging xmlquery node
// trees.  All queries below use local-name() so that they are independent
// of the namespace prefixes chosen by the producing application.

// queryAll returns all nodes matching expr.  All query expressions in this
// package are fixed strings, so compile errors cannot occur at run time.
func queryAll(n *xmlquery.Node, expr string) []*xmlquery.Node {
	nodes, err := xmlquery.QueryAll(n, expr)
	if err != nil {
		panic("docx: invalid XPath expression " + expr)
	}
	return nodes
}

func query(n *xmlquery.Node, expr string) *xmlquery.Node {
	node, err := xmlquery.Query(n, expr)
	if err != nil {
		panic("docx: invalid XPath expression " + expr)
	}
	return node
}

// wElem creates a WordprocessingML element <w:name>, with attributes given
// as alternating local name/value pairs.  Attribute names get the w:
// prefix, too.
func wElem(name string, attrs ...string) *xmlquery.Node {
	n := &xmlquery.Node{
		Type:         xmlquery.ElementNode,
		Data:         name,
		Prefix:       "w",
		NamespaceURI: wordNS,
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, xmlquery.Attr{
			Name:         xml.Name{Space: "w", Local: attrs[i]},
			Value:        attrs[i+1],
			NamespaceURI: wordNS,
		})
	}
	return n
}

// elem creates an element without a namespace prefix.
func elem(name string, attrs ...string) *xmlquery.Node {
	n := &xmlquery.Node{
		Type: xmlquery.ElementNode,
		Data: name,
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, xmlquery.Attr{
			Name:  xml.Name{Local: attrs[i]},
			Value: attrs[i+1],
		})
	}
	return n
}

func textNode(s string) *xmlquery.Node {
	return &xmlquery.Node{
		Type: xmlquery.TextNode,
		Data: s,
	}
}

func appendChild(parent, n *xmlquery.Node) {
	n.Parent = parent
	n.NextSibling = nil
	n.PrevSibling = parent.LastChild
	if parent.LastChild != nil {
		parent.LastChild.NextSibling = n
	} else {
		parent.FirstChild = n
	}
	parent.LastChild = n
}

// insertBefore inserts n as a sibling immediately before ref.
func insertBefore(ref, n *xmlquery.Node) {
	n.Parent = ref.Parent
	n.PrevSibling = ref.PrevSibling
	n.NextSibling = ref
	if ref.PrevSibling != nil {
		ref.PrevSibling.NextSibling = n
	} else if ref.Parent != nil {
		ref.Parent.FirstChild = n
	}
	ref.PrevSibling = n
}

// insertAfter inserts n as a sibling immediately after ref.
func insertAfter(ref, n *xmlquery.Node) {
	n.Parent = ref.Parent
	n.NextSibling = ref.NextSibling
	n.PrevSibling = ref
	if ref.NextSibling != nil {
		ref.NextSibling.PrevSibling = n
	} else if ref.Parent != nil {
		ref.Parent.LastChild = n
	}
	ref.NextSibling = n
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// serialize renders a parsed part back to XML.  The XML declaration is
// written in normalized form.  No whitespace is added or removed anywhere
// else: whitespace inside w:t elements is significant.
func serialize(doc *xmlquery.Node) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.DeclarationNode {
			continue
		}
		writeNode(&buf, n)
	}
	return buf.Bytes()
}

func writeNode(buf *bytes.Buffer, n *xmlquery.Node) {
	switch n.Type {
	case xmlquery.ElementNode:
		buf.WriteByte('<')
		writeName(buf, n)
		for _, attr := range n.Attr {
			buf.WriteByte(' ')
			if attr.Name.Space != "" {
				buf.WriteString(attr.Name.Space)
				buf.WriteByte(':')
			}
			buf.WriteString(attr.Name.Local)
			buf.WriteString(`="`)
			escapeXML(buf, attr.Value, true)
			buf.WriteByte('"')
		}
		if n.FirstChild == nil {
			buf.WriteString("/>")
			return
		}
		buf.WriteByte('>')
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			writeNode(buf, child)
		}
		buf.WriteString("</")
		writeName(buf, n)
		buf.WriteByte('>')

	case xmlquery.TextNode:
		escapeXML(buf, n.Data, false)

	case xmlquery.CharDataNode:
		buf.WriteString("<![CDATA[")
		buf.WriteString(n.Data)
		buf.WriteString("]]>")

	case xmlquery.CommentNode:
		buf.WriteString("<!--")
		buf.WriteString(n.Data)
		buf.WriteString("-->")
	}
}

func writeName(buf *bytes.Buffer, n *xmlquery.Node) {
	if n.Prefix != "" {
		buf.WriteString(n.Prefix)
		buf.WriteByte(':')
	}
	buf.WriteString(n.Data)
}

func escapeXML(buf *bytes.Buffer, s string, attr bool) {
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			if attr {
				buf.WriteString("&quot;")
			} else {
				buf.WriteRune(r)
			}
		default:
			buf.WriteRune(r)
		}
	}
}

// parseXML parses a part from a template string.  It panics on error and
// must only be used with known-good input.
func parseXML(s string) *xmlquery.Node {
	doc, err := xmlquery.Parse(bytes.NewReader([]byte(s)))
	if err != nil {
		panic("docx: invalid template: " + err.Error())
	}
	return doc
}
