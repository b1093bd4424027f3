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

import "testing"

func TestMatchText(t *testing.T) {
	cases := []struct {
		name   string
		target Target
		text   string
		want   bool
	}{
		{
			name:   "literal substring",
			target: Target{Pattern: "result"},
			text:   "the result was inconclusive",
			want:   true,
		},
		{
			name:   "case folding",
			target: Target{Pattern: "Result"},
			text:   "the RESULT was inconclusive",
			want:   true,
		},
		{
			name:   "case sensitive mismatch",
			target: Target{Pattern: "Result", CaseSensitive: true},
			text:   "the RESULT was inconclusive",
			want:   false,
		},
		{
			name:   "case sensitive match",
			target: Target{Pattern: "RESULT", CaseSensitive: true},
			text:   "the RESULT was inconclusive",
			want:   true,
		},
		{
			name:   "whole word rejects prefix",
			target: Target{Pattern: "cat", WholeWord: true},
			text:   "the category is empty",
			want:   false,
		},
		{
			name:   "whole word accepts token",
			target: Target{Pattern: "cat", WholeWord: true},
			text:   "the cat sat",
			want:   true,
		},
		{
			name:   "whole word at text boundaries",
			target: Target{Pattern: "cat", WholeWord: true},
			text:   "cat",
			want:   true,
		},
		{
			name:   "whole word before punctuation",
			target: Target{Pattern: "cat", WholeWord: true},
			text:   "feed the cat.",
			want:   true,
		},
		{
			name:   "whole word rejects later prefix but accepts later token",
			target: Target{Pattern: "cat", WholeWord: true},
			text:   "category of the cat",
			want:   true,
		},
		{
			name:   "underscore counts as word character",
			target: Target{Pattern: "cat", WholeWord: true},
			text:   "the cat_flap is stuck",
			want:   false,
		},
		{
			name:   "substring without whole word",
			target: Target{Pattern: "cat"},
			text:   "the category is empty",
			want:   true,
		},
		{
			name:   "regex",
			target: Target{Pattern: `err\w+`, MatchType: MatchRegex},
			text:   "an error occurred",
			want:   true,
		},
		{
			name:   "regex case insensitive by flag",
			target: Target{Pattern: `ERR\w+`, MatchType: MatchRegex},
			text:   "an error occurred",
			want:   true,
		},
		{
			name:   "regex case sensitive",
			target: Target{Pattern: `ERR\w+`, MatchType: MatchRegex, CaseSensitive: true},
			text:   "an error occurred",
			want:   false,
		},
		{
			name:   "regex whole word",
			target: Target{Pattern: `cat`, MatchType: MatchRegex, WholeWord: true},
			text:   "the category is empty",
			want:   false,
		},
		{
			name: "regex whole word with alternation",
			// The pattern is wrapped as \b(?:...)\b, so the word
			// boundaries apply to the whole alternation.
			target: Target{Pattern: `cat|dog`, MatchType: MatchRegex, WholeWord: true},
			text:   "the dogged category",
			want:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := tc.target
			if !target.prepare() {
				if tc.want {
					t.Fatalf("target unexpectedly inert")
				}
				return
			}
			got := matchText(&target, tc.text)
			if got != tc.want {
				t.Errorf("matchText(%q, %q): got %t, want %t",
					target.Pattern, tc.text, got, tc.want)
			}
		})
	}
}

func TestMatchDeterministic(t *testing.T) {
	target := Target{Pattern: "needle", WholeWord: true}
	if !target.prepare() {
		t.Fatal("target inert")
	}
	text := "hay needle hay"
	first := matchText(&target, text)
	for i := 0; i < 10; i++ {
		if got := matchText(&target, text); got != first {
			t.Fatalf("match result changed between runs")
		}
	}
}

func TestBadRegexIsInert(t *testing.T) {
	target := Target{Pattern: `(*unclosed`, MatchType: MatchRegex}
	if target.prepare() {
		t.Error("invalid regex target should be inert")
	}
	// prepare must be stable on repeated calls
	if target.prepare() {
		t.Error("inert target became resolvable")
	}
}
