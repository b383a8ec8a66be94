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

// Package pinsuki holds the domain types shared by the remote client, the
// snapshot cache and the search engine: a Pin (bookmark) as Pinboard
// serves it, a Tag with its aggregate usage count, and the Snapshot that
// groups one full copy of both.
package pinsuki

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// TagSep joins the tag list into the space delimited wire form.
const TagSep = " "

// Pin is a single bookmark record. The json field names follow the remote
// wire format: the title travels as `description` and the two flags are the
// literal strings "yes"/"no". TagList is the parsed form of Tags and is
// kept consistent with it; it is persisted in the local cache under its own
// key but never sent on the wire.
type Pin struct {
	Href     string    `json:"href"`
	Title    string    `json:"description"`
	Tags     string    `json:"tags"`
	Shared   string    `json:"shared"`
	ToRead   string    `json:"toread"`
	Extended string    `json:"extended,omitempty"`
	Time     time.Time `json:"time"`
	Meta     string    `json:"meta,omitempty"`
	Hash     string    `json:"hash,omitempty"`

	TagList []string `json:"tag_list,omitempty"`
}

// NewPin builds a Pin from user input. The url must be absolute and
// parseable. private and toread are translated to the wire flags.
func NewPin(rawurl, title string, tags []string, private, toread bool, extended string) (*Pin, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("invalid pin url %q: %w", rawurl, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("invalid pin url %q: missing scheme", rawurl)
	}

	pin := &Pin{
		Href:     u.String(),
		Title:    title,
		Shared:   boolFlag(!private),
		ToRead:   boolFlag(toread),
		Extended: extended,
		Time:     time.Now().UTC(),
	}
	pin.SetTags(tags)

	return pin, nil
}

// SetTags replaces the tag list and re-derives the joined tag text so both
// representations stay consistent. Empty tags are discarded.
func (p *Pin) SetTags(tags []string) {
	tags = slices.DeleteFunc(slices.Clone(tags), func(s string) bool {
		return strings.TrimSpace(s) == ""
	})
	p.TagList = tags
	p.Tags = strings.Join(tags, TagSep)
}

// ParseTags re-derives TagList from the joined tag text. Used after
// decoding wire records where only the text form is present.
func (p *Pin) ParseTags() {
	tags := strings.Split(p.Tags, TagSep)
	p.TagList = slices.DeleteFunc(tags, func(s string) bool {
		return s == ""
	})
}

// Private reports whether the pin is not shared.
func (p *Pin) Private() bool {
	return p.Shared != "yes"
}

func boolFlag(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
