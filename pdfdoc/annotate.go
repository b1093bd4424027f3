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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/annotation"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/pagetree"

	"seehuhn.de/go/anchor"
)

// noteIconSize is the edge length of the icon rectangle for note
// annotations, in PDF units.
const noteIconSize = 24.0

// highlightColor is the fill color for highlight annotations.
var highlightColor = color.DeviceRGB{1, 1, 0}

// Annotate resolves specs against the PDF file in and writes an annotated
// copy of the file to out.  Text anchors become highlight annotations,
// positional anchors become note annotations.  The function returns the
// number of annotations written.
func Annotate(in, out string, specs []anchor.Spec) (int, error) {
	r, err := pdf.Open(in, nil)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	doc, err := Load(r)
	if err != nil {
		return 0, err
	}

	anchors := anchor.Resolve(specs, doc)

	byPage := make(map[int][]anchor.Anchor)
	for _, a := range anchors {
		byPage[a.Page] = append(byPage[a.Page], a)
	}

	metaIn := r.GetMeta()
	w, err := pdf.Create(out, metaIn.Version, nil)
	if err != nil {
		return 0, err
	}

	rm := pdf.NewResourceManager(w)
	pageTree := pagetree.NewWriter(w, rm)
	copier := pdf.NewCopier(w, r)
	cursor := pdf.NewCursor(r)

	count := 0
	for pageNo := 1; pageNo <= doc.pages; pageNo++ {
		refIn, pageIn, err := pagetree.GetPage(r, pageNo-1)
		if err != nil {
			return 0, err
		}

		origAnnots, err := pdf.Optional(cursor.Array(pageIn["Annots"]))
		if err != nil {
			return 0, err
		}
		delete(pageIn, "Annots")

		// The new reference is registered before the dict is copied, so
		// that objects pointing back at the page resolve to the new page.
		refOut := w.Alloc()
		if refIn != 0 {
			copier.Redirect(refIn, refOut)
		}

		pageOut, err := copier.CopyDict(pageIn)
		if err != nil {
			return 0, err
		}

		var annots pdf.Array
		for _, obj := range origAnnots {
			native, ok := obj.(pdf.Native)
			if !ok {
				continue
			}
			copied, err := copier.Copy(native)
			if err != nil {
				return 0, err
			}
			annots = append(annots, copied)
		}
		for _, a := range byPage[pageNo] {
			ref, err := encodeAnnotation(w, rm, a)
			if err != nil {
				return 0, err
			}
			annots = append(annots, ref)
			count++
		}
		if annots != nil {
			pageOut["Annots"] = annots
		}

		if err := pageTree.AppendPageDict(refOut, pageOut); err != nil {
			return 0, err
		}
	}

	treeRef, err := pageTree.Close()
	if err != nil {
		return 0, err
	}
	err = rm.Close()
	if err != nil {
		return 0, err
	}

	metaOut := w.GetMeta()
	metaOut.Catalog.Pages = treeRef
	metaOut.Info = metaIn.Info

	err = w.Close()
	if err != nil {
		return 0, err
	}
	return count, nil
}

// encodeAnnotation writes one annotation object for the given anchor and
// returns its reference.
func encodeAnnotation(w *pdf.Writer, rm *pdf.ResourceManager, a anchor.Anchor) (pdf.Reference, error) {
	var annot annotation.Annotation
	if a.UnitID != "" {
		annot = &annotation.TextMarkup{
			Common: annotation.Common{
				Rect:     annotRect(a.Box),
				Contents: noteContents(a),
				Color:    highlightColor,
			},
			Markup: annotation.Markup{
				User: a.Author,
			},
			Type:       annotation.TextMarkupTypeHighlight,
			QuadPoints: quadPoints(a.Box),
		}
	} else {
		annot = &annotation.Text{
			Common: annotation.Common{
				Rect:     noteRect(a.Box),
				Contents: noteContents(a),
			},
			Markup: annotation.Markup{
				User: a.Author,
			},
			Icon: annotation.TextIconNote,
		}
	}

	native, err := annot.Encode(rm)
	if err != nil {
		return 0, err
	}
	ref := w.Alloc()
	err = w.Put(ref, native)
	if err != nil {
		return 0, err
	}
	return ref, nil
}

// noteContents formats the comment text shown in the annotation popup.
func noteContents(a anchor.Anchor) string {
	if a.Author == "" {
		return a.Text
	}
	return a.Author + ": " + a.Text
}

// annotRect converts an anchor box to a normalised PDF rectangle.
func annotRect(b *rect.Rect) pdf.Rectangle {
	res := pdf.Rectangle{LLx: b.LLx, LLy: b.LLy, URx: b.URx, URy: b.URy}
	if res.LLx > res.URx {
		res.LLx, res.URx = res.URx, res.LLx
	}
	if res.LLy > res.URy {
		res.LLy, res.URy = res.URy, res.LLy
	}
	return res
}

// quadPoints returns the quadrilateral covering the given box, with the
// corners in counter-clockwise order starting at the bottom-left.
func quadPoints(b *rect.Rect) []vec.Vec2 {
	r := annotRect(b)
	return []vec.Vec2{
		{X: r.LLx, Y: r.LLy},
		{X: r.URx, Y: r.LLy},
		{X: r.URx, Y: r.URy},
		{X: r.LLx, Y: r.URy},
	}
}

// noteRect places the icon rectangle of a note annotation at the top-left
// corner of the target box.
func noteRect(b *rect.Rect) pdf.Rectangle {
	r := annotRect(b)
	return pdf.Rectangle{
		LLx: r.LLx,
		LLy: r.URy - noteIconSize,
		URx: r.LLx + noteIconSize,
		URy: r.URy,
	}
}
