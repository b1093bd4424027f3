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
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/anchor"
)

func TestAssembleMergesFragments(t *testing.T) {
	as := &textAssembler{}
	as.startPage(1)
	as.addText(72, 700, 12, 42, "Hello,")
	as.addSpace()
	as.addText(118, 700, 12, 36, "World!")
	as.endLine()

	units := as.units
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1", len(units))
	}
	if units[0].Text != "Hello, World!" {
		t.Errorf("got text %q, want %q", units[0].Text, "Hello, World!")
	}
	if units[0].Page != 1 {
		t.Errorf("got page %d, want 1", units[0].Page)
	}
	if units[0].Box.LLx != 72 || units[0].Box.LLy != 700 {
		t.Errorf("wrong box origin: %v", units[0].Box)
	}
	if units[0].Box.URx != 118+36 {
		t.Errorf("got box right edge %g, want %g", units[0].Box.URx, 118.0+36)
	}
}

func TestAssembleSplitsLines(t *testing.T) {
	as := &textAssembler{}
	as.startPage(1)
	as.addText(72, 700, 12, 0, "first line")
	as.endLine()
	as.addText(72, 685, 12, 0, "second line")
	as.endLine()

	var texts []string
	for _, u := range as.units {
		texts = append(texts, u.Text)
	}
	want := []string{"first line", "second line"}
	if d := cmp.Diff(want, texts); d != "" {
		t.Errorf("wrong lines (-want +got):\n%s", d)
	}
	if as.units[0].ID == as.units[1].ID {
		t.Errorf("duplicate unit ID %q", as.units[0].ID)
	}
}

func TestAssembleBaselineChangeSplitsLine(t *testing.T) {
	// a baseline jump splits the line even without an explicit line break
	as := &textAssembler{}
	as.startPage(1)
	as.addText(72, 700, 12, 0, "above")
	as.addText(72, 650, 12, 0, "below")
	as.endLine()

	if len(as.units) != 2 {
		t.Fatalf("got %d units, want 2", len(as.units))
	}
}

func TestAssembleSplitsPages(t *testing.T) {
	as := &textAssembler{}
	as.startPage(1)
	as.addText(72, 700, 12, 0, "on page one")
	as.startPage(2)
	as.addText(72, 700, 12, 0, "on page two")
	as.endLine()

	if len(as.units) != 2 {
		t.Fatalf("got %d units, want 2", len(as.units))
	}
	if as.units[0].Page != 1 || as.units[1].Page != 2 {
		t.Errorf("wrong pages: %d, %d", as.units[0].Page, as.units[1].Page)
	}
	if as.units[1].ID != "page2/line1" {
		t.Errorf("got ID %q, want %q", as.units[1].ID, "page2/line1")
	}
}

func TestAssembleDropsBlankUnits(t *testing.T) {
	as := &textAssembler{}
	as.startPage(1)
	as.addText(72, 700, 12, 0, "   ")
	as.endLine()
	as.addText(72, 650, 12, 0, "visible")
	as.endLine()
	as.addText(72, 600, 12, 0, "")
	as.endLine()

	if len(as.units) != 1 {
		t.Fatalf("got %d units, want 1", len(as.units))
	}
	if as.units[0].Text != "visible" {
		t.Errorf("got text %q, want %q", as.units[0].Text, "visible")
	}
}

func TestAssembleCollapsesSpaces(t *testing.T) {
	as := &textAssembler{}
	as.startPage(1)
	as.addText(72, 700, 12, 0, "one")
	as.addSpace()
	as.addSpace()
	as.addText(100, 700, 12, 0, "two")
	as.endLine()

	if len(as.units) != 1 {
		t.Fatalf("got %d units, want 1", len(as.units))
	}
	if as.units[0].Text != "one two" {
		t.Errorf("got text %q, want %q", as.units[0].Text, "one two")
	}
}

func TestQuadPoints(t *testing.T) {
	box := &rect.Rect{LLx: 10, LLy: 20, URx: 110, URy: 32}
	got := quadPoints(box)
	want := []vec.Vec2{
		{X: 10, Y: 20},
		{X: 110, Y: 20},
		{X: 110, Y: 32},
		{X: 10, Y: 32},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("wrong quad points (-want +got):\n%s", d)
	}
}

func TestAnnotRectNormalises(t *testing.T) {
	box := &rect.Rect{LLx: 110, LLy: 32, URx: 10, URy: 20}
	got := annotRect(box)
	if got.LLx != 10 || got.LLy != 20 || got.URx != 110 || got.URy != 32 {
		t.Errorf("rectangle not normalised: %v", got)
	}
}

func TestNoteRect(t *testing.T) {
	box := &rect.Rect{LLx: 100, LLy: 500, URx: 300, URy: 540}
	got := noteRect(box)
	if got.LLx != 100 || got.URy != 540 {
		t.Errorf("icon not anchored at top-left corner: %v", got)
	}
	if got.URx-got.LLx != noteIconSize || got.URy-got.LLy != noteIconSize {
		t.Errorf("wrong icon size: %v", got)
	}
}

func TestNoteContents(t *testing.T) {
	a := anchor.Anchor{Text: "needs work", Author: "Reviewer"}
	if got := noteContents(a); got != "Reviewer: needs work" {
		t.Errorf("got %q", got)
	}
	a.Author = ""
	if got := noteContents(a); got != "needs work" {
		t.Errorf("got %q", got)
	}
}

func TestDocumentImplementsUnits(t *testing.T) {
	d := &Document{
		units: []anchor.TextUnit{
			{ID: "page1/line1", Page: 1, Text: "hello"},
		},
		pages: 3,
	}
	var units anchor.Units = d
	if n := units.NumPages(); n != 3 {
		t.Errorf("got %d pages, want 3", n)
	}
	if got := units.TextUnits(); len(got) != 1 || got[0].Text != "hello" {
		t.Errorf("wrong units: %v", got)
	}
}
