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

package pinboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/pinsuki/pinsuki"
)

// TagsFreq fetches the tag frequency collection, sorted by name for a
// deterministic snapshot order.
func (c *Client) TagsFreq(ctx context.Context) ([]pinsuki.Tag, error) {
	data, err := c.get(ctx, "tags/get", nil)
	if err != nil {
		return nil, err
	}

	return decodeTagsFreq(data)
}

// decodeTagsFreq handles the two shapes the remote serves: the normal
// name to count mapping, or a bare list when the account has no tags. The
// mapping shape is tried first; as a list, anything but empty is a
// protocol violation.
func decodeTagsFreq(data []byte) ([]pinsuki.Tag, error) {
	var freq map[string]any
	if err := json.Unmarshal(data, &freq); err == nil {
		tags := make([]pinsuki.Tag, 0, len(freq))
		for name, val := range freq {
			count, err := tagCount(val)
			if err != nil {
				return nil, &DecodeError{Err: fmt.Errorf("tag %q: %w", name, err)}
			}
			tags = append(tags, pinsuki.Tag{Name: name, Count: count})
		}
		slices.SortFunc(tags, func(a, b pinsuki.Tag) int {
			return strings.Compare(a.Name, b.Name)
		})
		return tags, nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if len(list) != 0 {
		return nil, &DecodeError{Err: fmt.Errorf("expected tag map, got list of %d", len(list))}
	}

	return []pinsuki.Tag{}, nil
}

// Counts arrive as strings from the real API but are kept tolerant of
// plain numbers.
func tagCount(val any) (int, error) {
	switch v := val.(type) {
	case string:
		count, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("bad count %q", v)
		}
		if count < 0 {
			return 0, fmt.Errorf("negative count %d", count)
		}
		return count, nil
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("negative count %v", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("bad count type %T", val)
	}
}

// RenameTag renames a tag on every pin that carries it.
func (c *Client) RenameTag(ctx context.Context, old, new string) error {
	params := url.Values{}
	params.Set("old", old)
	params.Set("new", new)

	data, err := c.get(ctx, "tags/rename", params)
	if err != nil {
		return err
	}

	return decodeResult(data)
}

// DeleteTag removes a tag from every pin.
func (c *Client) DeleteTag(ctx context.Context, name string) error {
	params := url.Values{}
	params.Set("tag", name)

	data, err := c.get(ctx, "tags/delete", params)
	if err != nil {
		return err
	}

	return decodeResult(data)
}

// SuggestTags asks the remote for popular tags matching a URL. The
// response is a list of heterogeneous objects; the first entry exposing a
// non-null `popular` field wins and its strings are returned in order.
func (c *Client) SuggestTags(ctx context.Context, rawurl string) ([]string, error) {
	params := url.Values{}
	params.Set("url", rawurl)

	data, err := c.get(ctx, "posts/suggest", params)
	if err != nil {
		return nil, err
	}

	return decodePopularTags(data)
}

func decodePopularTags(data []byte) ([]string, error) {
	var popular []string
	found := false
	badShape := false

	_, err := jsonparser.ArrayEach(data, func(entry []byte, vt jsonparser.ValueType, _ int, _ error) {
		if found || vt != jsonparser.Object {
			return
		}

		val, dt, _, err := jsonparser.Get(entry, "popular")
		if err != nil || dt == jsonparser.Null {
			return
		}
		found = true

		if dt != jsonparser.Array {
			badShape = true
			return
		}
		_, _ = jsonparser.ArrayEach(val, func(item []byte, it jsonparser.ValueType, _ int, _ error) {
			if it != jsonparser.String {
				return
			}
			if s, perr := jsonparser.ParseString(item); perr == nil {
				popular = append(popular, s)
			}
		})
	})
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if !found {
		return nil, &RespError{Raw: data, Reason: "no entry with popular tags"}
	}
	if badShape {
		return nil, &RespError{Raw: data, Reason: "popular field is not a list"}
	}

	return popular, nil
}
