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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"seehuhn.de/go/anchor"
)

// AddComment attaches the comment of a resolved anchor to the paragraph the
// anchor names.  The comment covers all runs of the paragraph; paragraphs
// without runs are skipped, mirroring the limits of the Word comment model.
//
// The anchor must come from resolving against this document's units.
func (d *Document) AddComment(a anchor.Anchor) error {
	p, ok := d.byID[a.UnitID]
	if !ok {
		return fmt.Errorf("docx: unknown unit %q", a.UnitID)
	}

	runs := queryAll(p, "./*[local-name()='r']")
	if len(runs) == 0 {
		return nil
	}

	if err := d.ensureComments(); err != nil {
		return err
	}
	id := strconv.Itoa(d.nextCommentID)
	d.nextCommentID++

	insertBefore(runs[0], wElem("commentRangeStart", "id", id))
	last := runs[len(runs)-1]
	end := wElem("commentRangeEnd", "id", id)
	insertAfter(last, end)

	refRun := wElem("r")
	rPr := wElem("rPr")
	appendChild(rPr, wElem("rStyle", "val", "CommentReference"))
	appendChild(refRun, rPr)
	appendChild(refRun, wElem("commentReference", "id", id))
	insertAfter(end, refRun)

	d.appendCommentBody(id, a)
	d.numComments++
	return nil
}

// appendCommentBody adds the w:comment element holding the comment text to
// the comments part.
func (d *Document) appendCommentBody(id string, a anchor.Anchor) {
	root := query(d.comments, "//*[local-name()='comments']")

	date := time.Now().UTC().Format("2006-01-02T15:04:05Z")
	c := wElem("comment",
		"id", id,
		"author", a.Author,
		"date", date,
		"initials", initials(a.Author))

	body := wElem("p")
	run := wElem("r")
	text := wElem("t")
	if strings.TrimSpace(a.Text) != a.Text {
		text.Attr = append(text.Attr, xmlquery.Attr{
			Name:  xml.Name{Space: "xml", Local: "space"},
			Value: "preserve",
		})
	}
	appendChild(text, textNode(a.Text))
	appendChild(run, text)
	appendChild(body, run)
	appendChild(c, body)

	appendChild(root, c)
}

// initials derives the w:initials value from an author name.
func initials(author string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(author) {
		for _, r := range word {
			sb.WriteRune(r)
			break
		}
	}
	if sb.Len() == 0 {
		return "?"
	}
	return sb.String()
}

const commentsTemplate = xmlHeader +
	`<w:comments xmlns:w="` + wordNS + `"></w:comments>`

// ensureComments makes sure the comments part exists and is registered in
// the package's content types and relationships.  Existing comments are
// preserved; new comment IDs continue after the highest ID in use.
func (d *Document) ensureComments() error {
	if d.comments != nil {
		return nil
	}

	if data, ok := d.parts[commentsPart]; ok {
		doc, err := xmlquery.Parse(bytes.NewReader(data))
		if err != nil {
			return &FormatError{Part: commentsPart, Err: err}
		}
		d.comments = doc
		for _, c := range queryAll(doc, "//*[local-name()='comment']") {
			if id, err := strconv.Atoi(attrValue(c, "id")); err == nil && id >= d.nextCommentID {
				d.nextCommentID = id + 1
			}
		}
		return nil
	}

	d.comments = parseXML(commentsTemplate)
	if err := d.registerContentType(); err != nil {
		return err
	}
	return d.registerRelationship()
}

func attrValue(n *xmlquery.Node, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// registerContentType adds the comments part to [Content_Types].xml.
func (d *Document) registerContentType() error {
	data, ok := d.parts[ctypesPart]
	if !ok {
		return &FormatError{Part: ctypesPart, Err: errMissingPart}
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return &FormatError{Part: ctypesPart, Err: err}
	}

	for _, o := range queryAll(doc, "//*[local-name()='Override']") {
		if attrValue(o, "PartName") == "/"+commentsPart {
			return nil // already registered
		}
	}

	types := query(doc, "//*[local-name()='Types']")
	if types == nil {
		return &FormatError{Part: ctypesPart, Err: errMissingPart}
	}
	appendChild(types, elem("Override",
		"PartName", "/"+commentsPart,
		"ContentType", commentsCType))
	d.ctypes = doc
	return nil
}

// registerRelationship links the comments part from the main document part.
func (d *Document) registerRelationship() error {
	data, ok := d.parts[docRelsPart]
	if !ok {
		return &FormatError{Part: docRelsPart, Err: errMissingPart}
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return &FormatError{Part: docRelsPart, Err: err}
	}

	maxID := 0
	for _, r := range queryAll(doc, "//*[local-name()='Relationship']") {
		if attrValue(r, "Type") == commentsRelType {
			return nil // already linked
		}
		id := attrValue(r, "Id")
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "rId")); err == nil && n > maxID {
			maxID = n
		}
	}

	rels := query(doc, "//*[local-name()='Relationships']")
	if rels == nil {
		return &FormatError{Part: docRelsPart, Err: errMissingPart}
	}
	appendChild(rels, elem("Relationship",
		"Id", "rId"+strconv.Itoa(maxID+1),
		"Type", commentsRelType,
		"Target", "comments.xml"))
	d.rels = doc
	return nil
}
