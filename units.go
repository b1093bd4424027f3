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

package anchor

import "seehuhn.de/go/geom/rect"

// A TextUnit is one addressable block of document text, for example a
// paragraph, or a positioned run of text on a page.
type TextUnit struct {
	// ID identifies the unit within its document.  The loader chooses the
	// naming scheme; the resolver only passes IDs through to anchors.
	ID string

	// Page is the 1-based page number the unit appears on, or 0 for
	// flow-layout formats without page structure.
	Page int

	// Text is the unit's extracted plain text.
	Text string

	// Box is the unit's bounding box in the page's default coordinate
	// space, if the format provides one.
	Box *rect.Rect
}

// Units is the resolvable surface of one document, produced by a
// format-specific loader and consumed read-only by [Resolve].
type Units interface {
	// TextUnits returns the document's text units in reading order:
	// paragraph order, or page order and then in-page order for
	// paginated formats.  The returned slice must not change while
	// resolution is running.
	TextUnits() []TextUnit

	// NumPages returns the number of pages, or 0 for formats without an
	// addressable page structure.  Position-mode targets resolve to
	// nothing when their page number exceeds this value.
	NumPages() int
}

// UnitList is a simple [Units] implementation backed by a slice.
type UnitList struct {
	Units []TextUnit
	Pages int
}

// TextUnits implements the [Units] interface.
func (l *UnitList) TextUnits() []TextUnit { return l.Units }

// NumPages implements the [Units] interface.
func (l *UnitList) NumPages() int { return l.Pages }

// An Anchor is one resolved location together with the comment to be
// embedded there.  Anchors are consumed immediately by a format-specific
// embedder and have no identity beyond their field values.
type Anchor struct {
	// UnitID is the ID of the matched text unit.  It is empty for
	// anchors produced by position-mode targets.
	UnitID string

	// Page is the 1-based page number, or 0 for flow-layout formats.
	Page int

	// Box is the region the comment refers to, if known.
	Box *rect.Rect

	// Text is the comment text.
	Text string

	// Author is the comment author.
	Author string
}
