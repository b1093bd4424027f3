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

// Package docx anchors comments in Word documents.
//
// A DOCX file is a zip archive of XML parts.  The package reads the main
// document part, exposes the body paragraphs as text units for resolution
// with seehuhn.de/go/anchor, and embeds resolved comments using the
// WordprocessingML comment machinery: a comment range around the
// paragraph's runs, a comment reference, and an entry in the comments part.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"

	"seehuhn.de/go/anchor"
)

// Part names and namespaces used in the OOXML package structure.
const (
	documentPart = "word/document.xml"
	commentsPart = "word/comments.xml"
	ctypesPart   = "[Content_Types].xml"
	docRelsPart  = "word/_rels/document.xml.rels"

	wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	commentsCType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.comments+xml"
	commentsRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/comments"
)

// FormatError indicates that a file is not a usable DOCX document.
type FormatError struct {
	Part string
	Err  error
}

func (err *FormatError) Error() string {
	middle := ""
	if err.Part != "" {
		middle = " (part " + err.Part + ")"
	}
	tail := ""
	if err.Err != nil {
		tail = ": " + err.Err.Error()
	}
	return "not a valid DOCX file" + middle + tail
}

func (err *FormatError) Unwrap() error {
	return err.Err
}

// Document is a DOCX file opened for annotation.
type Document struct {
	names []string          // zip entry names, in archive order
	parts map[string][]byte // raw part contents

	doc   *xmlquery.Node   // parsed word/document.xml
	paras []*xmlquery.Node // body paragraphs, in reading order
	units []anchor.TextUnit
	byID  map[string]*xmlquery.Node

	// lazily created/parsed when the first comment is added
	comments *xmlquery.Node
	ctypes   *xmlquery.Node
	rels     *xmlquery.Node

	nextCommentID int
	numComments   int
}

// Load opens a DOCX file and extracts its resolvable surface.
func Load(fname string) (*Document, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	fi, err := fd.Stat()
	if err != nil {
		return nil, err
	}
	return Read(fd, fi.Size())
}

// Read opens DOCX data from an [io.ReaderAt].
func Read(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &FormatError{Err: err}
	}

	d := &Document{
		parts: make(map[string][]byte),
		byID:  make(map[string]*xmlquery.Node),
	}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, &FormatError{Part: f.Name, Err: err}
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, &FormatError{Part: f.Name, Err: err}
		}
		d.names = append(d.names, f.Name)
		d.parts[f.Name] = data
	}

	body, ok := d.parts[documentPart]
	if !ok {
		return nil, &FormatError{Part: documentPart, Err: errMissingPart}
	}
	d.doc, err = xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &FormatError{Part: documentPart, Err: err}
	}

	d.paras = queryAll(d.doc,
		"//*[local-name()='document']/*[local-name()='body']/*[local-name()='p']")
	for i, p := range d.paras {
		id := fmt.Sprintf("p%d", i+1)
		d.byID[id] = p
		d.units = append(d.units, anchor.TextUnit{
			ID:   id,
			Text: paragraphText(p),
		})
	}
	return d, nil
}

var errMissingPart = fmt.Errorf("missing part")

// TextUnits implements the [anchor.Units] interface.  Each body paragraph
// is one unit, in document order.
func (d *Document) TextUnits() []anchor.TextUnit { return d.units }

// NumPages implements the [anchor.Units] interface.  DOCX is a flow-layout
// format without page structure, so position-mode targets never resolve.
func (d *Document) NumPages() int { return 0 }

// NumComments returns the number of comments added so far.
func (d *Document) NumComments() int { return d.numComments }

// paragraphText returns the concatenated text of all w:t elements in a
// paragraph.
func paragraphText(p *xmlquery.Node) string {
	var sb strings.Builder
	for _, t := range queryAll(p, ".//*[local-name()='t']") {
		sb.WriteString(t.InnerText())
	}
	return sb.String()
}

// Save writes the document, with any added comments, to a new file.
// Parts which were not modified are copied byte for byte.
func (d *Document) Save(fname string) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = d.Write(fd)
	if closeErr := fd.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Write writes the document, with any added comments, to w.
func (d *Document) Write(w io.Writer) error {
	updated := map[string][]byte{
		documentPart: serialize(d.doc),
	}
	if d.comments != nil {
		updated[commentsPart] = serialize(d.comments)
	}
	if d.ctypes != nil {
		updated[ctypesPart] = serialize(d.ctypes)
	}
	if d.rels != nil {
		updated[docRelsPart] = serialize(d.rels)
	}

	names := d.names
	if d.comments != nil && d.parts[commentsPart] == nil {
		names = append(names[:len(names):len(names)], commentsPart)
	}

	zw := zip.NewWriter(w)
	for _, name := range names {
		data, ok := updated[name]
		if !ok {
			data = d.parts[name]
		}
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			return err
		}
	}
	return zw.Close()
}
