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

// Package anchor resolves annotation requests to concrete locations in a
// document.
//
// An annotation request ([Spec]) names a target, either a text pattern
// together with matching options, or an absolute position on a page, and
// carries the comment which is to be attached there.  The document itself is
// represented by its resolvable surface only: an ordered sequence of text
// units (paragraphs, or positioned text runs for paginated formats), provided
// by a format-specific loader through the [Units] interface.
//
// [Resolve] turns a list of specs and one Units snapshot into a list of
// [Anchor] values, each naming one location and the comment to embed there.
// Resolution is a pure function: it never modifies the snapshot, and running
// it twice on the same input yields identical results.  A spec whose target
// cannot be resolved (pattern not found, page out of range, malformed
// options) yields no anchors; it is not an error.
//
// Embedding the comments into the document file is the concern of the
// format-specific subpackages:
//
//   - seehuhn.de/go/anchor/docx adds Word comments to DOCX files,
//   - seehuhn.de/go/anchor/pdfdoc adds text and highlight annotations to
//     PDF files.
package anchor
