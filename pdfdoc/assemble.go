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

package pdfdoc

import (
	"fmt"
	"math"
	"strings"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/anchor"
)

// A textAssembler groups the text fragments of a content stream into
// line-shaped text units.  Fragments accumulate into the current line until
// the reader reports a line break, so that a search pattern can match across
// the boundaries of individual text-showing operators.
type textAssembler struct {
	units []anchor.TextUnit

	cur    *anchor.TextUnit
	pageNo int
	lineNo int
}

// startPage begins a new page.  Fragments are never merged across pages.
func (as *textAssembler) startPage(pageNo int) {
	as.endLine()
	as.pageNo = pageNo
	as.lineNo = 0
}

// addText records one text fragment.  The position (x, y) is the rendering
// origin of the fragment in device coordinates, size the effective font
// size and width the rendered width, both in the same units.
func (as *textAssembler) addText(x, y, size, width float64, text string) {
	if text == "" {
		return
	}
	if size <= 0 {
		size = 12
	}
	if width <= 0 {
		width = estimateWidth(text, size)
	}

	cur := as.cur
	if cur != nil && math.Abs(y-cur.Box.LLy) < 0.5*size {
		cur.Text += text
		if x+width > cur.Box.URx {
			cur.Box.URx = x + width
		}
		if y+size > cur.Box.URy {
			cur.Box.URy = y + size
		}
		return
	}

	as.endLine()
	as.lineNo++
	as.cur = &anchor.TextUnit{
		ID:   fmt.Sprintf("page%d/line%d", as.pageNo, as.lineNo),
		Page: as.pageNo,
		Text: text,
		Box: &rect.Rect{
			LLx: x,
			LLy: y,
			URx: x + width,
			URy: y + size,
		},
	}
}

// addSpace records a word gap within the current line.
func (as *textAssembler) addSpace() {
	cur := as.cur
	if cur == nil || strings.HasSuffix(cur.Text, " ") {
		return
	}
	cur.Text += " "
}

// endLine completes the current unit.  Units without visible text are
// dropped.
func (as *textAssembler) endLine() {
	if as.cur != nil && strings.TrimSpace(as.cur.Text) != "" {
		as.units = append(as.units, *as.cur)
	}
	as.cur = nil
}

// estimateWidth guesses the width of a text fragment from the font size.
// Half an em per character is a crude but serviceable average for Latin
// text.
func estimateWidth(text string, size float64) float64 {
	n := 0
	for range text {
		n++
	}
	return 0.5 * size * float64(n)
}
