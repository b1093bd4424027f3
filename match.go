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

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// matchText reports whether text satisfies the target's pattern under its
// matching options.  Matching is at whole-unit granularity: the caller
// learns that the unit matched, not where inside the unit.
//
// The result depends only on the unit text and the target options.  The
// only normalization applied is the documented case folding.
func matchText(t *Target, text string) bool {
	if t.MatchType == MatchRegex {
		// prepare has compiled the pattern, with the case-insensitivity
		// flag applied to the pattern rather than the input.
		return t.re.MatchString(text)
	}

	pat := t.Pattern
	if !t.CaseSensitive {
		text = strings.ToLower(text)
		pat = strings.ToLower(pat)
	}
	if !t.WholeWord {
		return strings.Contains(text, pat)
	}
	return containsWord(text, pat)
}

// containsWord reports whether pat occurs in text as a token delimited by
// non-word characters or the text boundaries on both sides.
func containsWord(text, pat string) bool {
	if pat == "" {
		return false
	}
	for off := 0; ; {
		i := strings.Index(text[off:], pat)
		if i < 0 {
			return false
		}
		start := off + i
		end := start + len(pat)
		if isBoundaryBefore(text, start) && isBoundaryAfter(text, end) {
			return true
		}
		off = start + 1
	}
}

func isBoundaryBefore(s string, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:pos])
	return !isWordRune(r)
}

func isBoundaryAfter(s string, pos int) bool {
	if pos == len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
