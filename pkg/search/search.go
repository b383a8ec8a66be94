//
// Copyright (c) 2026 pinsuki contributors <https://github.com/pinsuki/pinsuki>
//
// All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// This file is part of pinsuki.
//
// pinsuki is free software: you can redistribute it and/or modify it under the terms of
// the GNU Affero General Public License as published by the Free Software Foundation,
// either version 3 of the License, or (at your option) any later version.
//
// pinsuki is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR
// PURPOSE.  See the GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License along with
// pinsuki.  If not, see <http://www.gnu.org/licenses/>.

// Package search matches queries against the in-memory snapshot.
//
// Exact mode lower-cases both the query and every searched field (URL,
// title, tag text, tag name) and matches by substring containment: one
// case-folding policy applied the same way on both sides.
//
// Fuzzy mode is ordered-subsequence matching ("dtm" matches "datetime"),
// case-insensitive and unanchored. Query characters are always literal;
// no pattern language ever sees user input, so there is nothing to
// escape and no way to build a runaway pattern.
package search

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pinsuki/pinsuki"
)

// Mode selects the matching algorithm.
type Mode int

const (
	Exact Mode = iota
	Fuzzy
)

// Pins returns references to the matching pins in original collection
// order, or nil when nothing matches. A pin matches when its URL, title or
// tag text matches the query.
func Pins(pins []pinsuki.Pin, query string, mode Mode) []*pinsuki.Pin {
	var hits []*pinsuki.Pin

	for i := range pins {
		if pinMatches(&pins[i], query, mode) {
			hits = append(hits, &pins[i])
		}
	}

	return hits
}

// PinsByTag is like Pins but only considers the tag text, for tag-only
// search.
func PinsByTag(pins []pinsuki.Pin, query string, mode Mode) []*pinsuki.Pin {
	var hits []*pinsuki.Pin

	for i := range pins {
		if matches(pins[i].Tags, query, mode) {
			hits = append(hits, &pins[i])
		}
	}

	return hits
}

// Tags returns references to the matching tags in original collection
// order, or nil when nothing matches.
func Tags(tags []pinsuki.Tag, query string, mode Mode) []*pinsuki.Tag {
	var hits []*pinsuki.Tag

	for i := range tags {
		if matches(tags[i].Name, query, mode) {
			hits = append(hits, &tags[i])
		}
	}

	return hits
}

// Narrow filters an already-matched result set by a further keyword, for
// multi-keyword queries where every keyword must match.
func Narrow(pins []*pinsuki.Pin, query string, mode Mode, tagOnly bool) []*pinsuki.Pin {
	var hits []*pinsuki.Pin

	for _, pin := range pins {
		if tagOnly && matches(pin.Tags, query, mode) {
			hits = append(hits, pin)
		} else if !tagOnly && pinMatches(pin, query, mode) {
			hits = append(hits, pin)
		}
	}

	return hits
}

func pinMatches(pin *pinsuki.Pin, query string, mode Mode) bool {
	return matches(pin.Href, query, mode) ||
		matches(pin.Title, query, mode) ||
		matches(pin.Tags, query, mode)
}

func matches(text, query string, mode Mode) bool {
	if mode == Fuzzy {
		return fuzzy.MatchFold(query, text)
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}
