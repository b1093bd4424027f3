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
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/rect"
)

// A Spec is one annotation request: a target describing where the comment
// belongs, and the comment itself.
//
// Specs are usually obtained from [ReadSpecs], which applies the documented
// field defaults.  Specs constructed directly get the Go zero values
// instead; in particular WholeWord then defaults to false and the author
// name is empty.
type Spec struct {
	Target  Target
	Comment Comment
}

// Comment is the payload attached at each resolved location.
type Comment struct {
	Text   string
	Author string
}

// Mode selects the resolution strategy for a target.
type Mode int

const (
	// ModeText locates the target by matching a text pattern against the
	// document's text units.
	ModeText Mode = iota

	// ModePosition locates the target by page number and bounding box.
	// This only works for paginated document formats.
	ModePosition
)

// MatchType determines how a text pattern is compared to unit text.
type MatchType int

const (
	// MatchLiteral treats the pattern as a literal substring.
	MatchLiteral MatchType = iota

	// MatchRegex treats the pattern as a regular expression, using the
	// syntax of the regexp package.
	MatchRegex
)

// Occurrence selects which of possibly many matching units receive the
// comment.  The zero value selects the first match.
type Occurrence struct {
	// All selects every matching unit.  When All is set, N is ignored.
	All bool

	// N selects the n-th matching unit, counted from 1 in document order.
	// Values below 1 are treated as 1.
	N int
}

// OccurrenceAll selects every matching unit.
var OccurrenceAll = Occurrence{All: true}

func (o Occurrence) index() int {
	if o.N < 1 {
		return 1
	}
	return o.N
}

// Target describes where in a document a comment should be attached.
type Target struct {
	// Mode selects between text matching and positional lookup.
	Mode Mode

	// Pattern is the text to search for.  Used in ModeText only.
	// A target with an empty pattern never matches.
	Pattern string

	// MatchType determines whether Pattern is a literal string or a
	// regular expression.
	MatchType MatchType

	// CaseSensitive enables case-sensitive matching.  For literal
	// patterns, case-insensitive matching compares the lowercased texts;
	// for regular expressions the pattern is compiled with the `i` flag
	// instead, so that the pattern text is never altered.
	CaseSensitive bool

	// WholeWord requires the pattern to occur as a complete word,
	// delimited by non-word characters or the unit boundaries.  For
	// regular expressions this wraps the pattern as `\b(?:pat)\b`.
	WholeWord bool

	// Occurrence selects which matches receive the comment.
	Occurrence Occurrence

	// Page is the 1-based page number for ModePosition.
	Page int

	// Box is the bounding box for ModePosition, in the page's default
	// coordinate space.  A position target without a box never resolves.
	Box *rect.Rect

	re    *regexp.Regexp
	inert bool
}

// prepare validates the target and, for regex targets, compiles the pattern.
// It reports whether the target can resolve at all.  Malformed targets are
// inert: they resolve to zero anchors, but never cause an error.
func (t *Target) prepare() bool {
	if t.inert {
		return false
	}
	switch t.Mode {
	case ModePosition:
		return t.Page >= 1 && t.Box != nil
	default:
		if t.Pattern == "" {
			return false
		}
		if t.MatchType == MatchRegex && t.re == nil {
			pat := t.Pattern
			if t.WholeWord {
				pat = `\b(?:` + pat + `)\b`
			}
			if !t.CaseSensitive {
				pat = `(?i)` + pat
			}
			re, err := regexp.Compile(pat)
			if err != nil {
				t.inert = true
				return false
			}
			t.re = re
		}
		return true
	}
}

// The wire format for annotation specs.  A file contains either a single
// object or an array of objects:
//
//	{
//	  "target": {
//	    "mode": "text",
//	    "text": "total cost",
//	    "match_type": "exact",
//	    "case_sensitive": false,
//	    "whole_word": true,
//	    "occurrence": "first",
//	    "pdf": {"page": 2, "bbox": [100, 500, 300, 520]}
//	  },
//	  "comment": {"text": "please double-check", "author": "Reviewer"}
//	}
type rawSpec struct {
	Target  rawTarget  `json:"target"`
	Comment rawComment `json:"comment"`
}

type rawTarget struct {
	Mode          string          `json:"mode"`
	Text          string          `json:"text"`
	MatchType     string          `json:"match_type"`
	CaseSensitive *bool           `json:"case_sensitive"`
	WholeWord     *bool           `json:"whole_word"`
	Occurrence    json.RawMessage `json:"occurrence"`
	PDF           *rawPosition    `json:"pdf"`
}

type rawPosition struct {
	Page int       `json:"page"`
	BBox []float64 `json:"bbox"`
}

type rawComment struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// DefaultAuthor is the author name used for specs which do not name one.
const DefaultAuthor = "Reviewer"

// ReadSpecs reads a list of annotation specs in JSON form.  The input must
// be either a single JSON object or an array of objects.
//
// Missing fields get their documented defaults: text mode, literal matching,
// case-insensitive, whole words, first occurrence, author "Reviewer".
// Malformed field values do not cause an error here; the affected spec
// simply resolves to zero anchors.
func ReadSpecs(r io.Reader) ([]Spec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw []rawSpec
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "[") {
		err = json.Unmarshal(data, &raw)
	} else {
		var one rawSpec
		err = json.Unmarshal(data, &one)
		raw = []rawSpec{one}
	}
	if err != nil {
		return nil, fmt.Errorf("invalid annotation specs: %w", err)
	}

	specs := make([]Spec, len(raw))
	for i, rs := range raw {
		specs[i] = rs.spec()
	}
	return specs, nil
}

func (rs rawSpec) spec() Spec {
	s := Spec{
		Comment: Comment{
			Text:   rs.Comment.Text,
			Author: rs.Comment.Author,
		},
	}
	if s.Comment.Author == "" {
		s.Comment.Author = DefaultAuthor
	}

	t := &s.Target
	rt := rs.Target
	if rt.Mode == "position" {
		t.Mode = ModePosition
		if rt.PDF != nil {
			t.Page = rt.PDF.Page
			if len(rt.PDF.BBox) == 4 {
				b := rt.PDF.BBox
				t.Box = &rect.Rect{LLx: b[0], LLy: b[1], URx: b[2], URy: b[3]}
			}
		}
		return s
	}

	// Any other mode value, including the empty string, means text mode.
	// The text-matching defaults apply only here, so that position specs
	// keep the zero values.
	t.Mode = ModeText
	t.WholeWord = true
	t.Occurrence = Occurrence{N: 1}
	t.Pattern = rt.Text
	if rt.MatchType == "regex" {
		t.MatchType = MatchRegex
	}
	if rt.CaseSensitive != nil {
		t.CaseSensitive = *rt.CaseSensitive
	}
	if rt.WholeWord != nil {
		t.WholeWord = *rt.WholeWord
	}
	t.Occurrence, t.inert = parseOccurrence(rt.Occurrence)
	return s
}

// parseOccurrence interprets the wire form of an occurrence selector:
// "first", "all", or an integer (as JSON string or number).  Unparseable
// strings fall back to the first occurrence; integers below 1 make the
// spec inert.
func parseOccurrence(raw json.RawMessage) (occ Occurrence, inert bool) {
	occ = Occurrence{N: 1}
	if len(raw) == 0 {
		return occ, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch s {
		case "first", "":
			return occ, false
		case "all":
			return OccurrenceAll, false
		default:
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return occ, false
			}
			return Occurrence{N: n}, n < 1
		}
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return Occurrence{N: n}, n < 1
	}
	return occ, false
}
