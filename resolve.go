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

import "strings"

// Resolve computes the anchors for a batch of annotation requests against
// one document snapshot.
//
// Specs are processed in order, and the anchors of each spec appear in
// document order, so the combined result is ordered by spec first and by
// match position second.  A spec that resolves to nothing contributes no
// anchors; this is not an error, so one unmatched or malformed spec never
// affects the others.
//
// Resolve does not modify units.  Calling it again with the same arguments
// yields an identical result.
func Resolve(specs []Spec, units Units) []Anchor {
	var anchors []Anchor
	for i := range specs {
		anchors = append(anchors, resolveSpec(&specs[i], units)...)
	}
	return anchors
}

func resolveSpec(s *Spec, units Units) []Anchor {
	if !s.Target.prepare() {
		return nil
	}
	if s.Target.Mode == ModePosition {
		return resolvePosition(s, units)
	}
	return resolveText(s, units)
}

// resolveText runs the text-mode matcher over all units in document order
// and applies the occurrence selector.  Matches are counted globally across
// the whole document, never restarted per page or section.
func resolveText(s *Spec, units Units) []Anchor {
	t := &s.Target
	occ := t.Occurrence

	var anchors []Anchor
	count := 0
	for _, u := range units.TextUnits() {
		// Empty units can never match and do not advance the
		// occurrence counter.
		if strings.TrimSpace(u.Text) == "" {
			continue
		}
		if !matchText(t, u.Text) {
			continue
		}
		count++

		if occ.All {
			anchors = append(anchors, makeAnchor(s, u))
			continue
		}
		if count == occ.index() {
			anchors = append(anchors, makeAnchor(s, u))
			break
		}
	}
	return anchors
}

// resolvePosition emits the single anchor for a position-mode target, or
// nothing if the page number is out of range.  The validity of the bounding
// box itself was already checked by prepare.
func resolvePosition(s *Spec, units Units) []Anchor {
	t := &s.Target
	if t.Page > units.NumPages() {
		return nil
	}
	box := *t.Box
	return []Anchor{{
		Page:   t.Page,
		Box:    &box,
		Text:   s.Comment.Text,
		Author: s.Comment.Author,
	}}
}

func makeAnchor(s *Spec, u TextUnit) Anchor {
	a := Anchor{
		UnitID: u.ID,
		Page:   u.Page,
		Text:   s.Comment.Text,
		Author: s.Comment.Author,
	}
	if u.Box != nil {
		box := *u.Box
		a.Box = &box
	}
	return a
}
