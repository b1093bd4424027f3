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

// Package pdfdoc resolves annotation specs against PDF files.
//
// The text of each page is extracted from the content streams and grouped
// into line units which can be searched by [anchor.Resolve].  Matched
// anchors are then written back to an annotated copy of the file, as
// highlight annotations for text anchors and as note annotations for
// positional ones.
package pdfdoc

import (
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/page"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/reader"

	"seehuhn.de/go/anchor"
)

// Document holds the text content of a PDF file, ready for target
// resolution.
type Document struct {
	units []anchor.TextUnit
	pages int
}

var _ anchor.Units = (*Document)(nil)

// Load extracts the text of all pages of a PDF file.
func Load(r pdf.Getter) (*Document, error) {
	numPages, err := pagetree.NumPages(r)
	if err != nil {
		return nil, err
	}

	x := pdf.NewExtractor(r)
	contents := reader.New(x)
	as := &textAssembler{}

	contents.Character = func(c font.Code) error {
		// inside an ActualText region the replacement text has already
		// been recorded
		if contents.InActualText() {
			return nil
		}
		st := contents.State.GState
		xPos, yPos := st.GetTextPositionDevice()
		as.addText(xPos, yPos, st.TextFontSize, c.Width*st.TextFontSize, c.Text)
		return nil
	}
	contents.TextEvent = func(event reader.TextEvent, _ float64) {
		switch event {
		case reader.TextEventSpace:
			as.addSpace()
		case reader.TextEventNL:
			as.endLine()
		}
	}
	contents.ActualText = func(event reader.ActualTextEvent, text string) error {
		if event == reader.ActualTextBegin {
			st := contents.State.GState
			xPos, yPos := st.GetTextPositionDevice()
			as.addText(xPos, yPos, st.TextFontSize, 0, text)
		}
		return nil
	}

	pageNo := 0
	pages := pagetree.NewIterator(r)
	for _, pageDict := range pages.All() {
		pageNo++
		as.startPage(pageNo)

		pg, err := pdf.Decode(pdf.CursorAt(x, nil), pageDict, page.Decode)
		if err != nil {
			return nil, err
		}
		if err := contents.ProcessPage(pg); err != nil {
			return nil, err
		}
	}
	if pages.Err != nil {
		return nil, pages.Err
	}
	as.endLine()

	return &Document{units: as.units, pages: numPages}, nil
}

// TextUnits returns the text lines of the document in reading order.
func (d *Document) TextUnits() []anchor.TextUnit {
	return d.units
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	return d.pages
}
