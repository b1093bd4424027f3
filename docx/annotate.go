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

import "seehuhn.de/go/anchor"

// Annotate resolves the given specs against the DOCX file in, embeds the
// resulting comments, and writes the annotated document to out.  It returns
// the number of comments embedded.
//
// Specs which resolve to nothing are skipped silently; only failures to
// read or write the document itself are errors.
func Annotate(in, out string, specs []anchor.Spec) (int, error) {
	doc, err := Load(in)
	if err != nil {
		return 0, err
	}

	for _, a := range anchor.Resolve(specs, doc) {
		if err := doc.AddComment(a); err != nil {
			return 0, err
		}
	}

	if err := doc.Save(out); err != nil {
		return 0, err
	}
	return doc.NumComments(), nil
}
