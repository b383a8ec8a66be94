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
	"net/url"
	"time"

	"github.com/pinsuki/pinsuki"
)

// AllPins fetches the complete bookmark collection. Records whose href is
// missing or does not parse as an absolute URL are dropped; the drop count
// is returned for diagnostics. Only a payload that is not a JSON array at
// all is fatal.
func (c *Client) AllPins(ctx context.Context) ([]pinsuki.Pin, int, error) {
	data, err := c.get(ctx, "posts/all", nil)
	if err != nil {
		return nil, 0, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, &DecodeError{Err: err}
	}

	pins := make([]pinsuki.Pin, 0, len(raw))
	dropped := 0
	for _, rec := range raw {
		var pin pinsuki.Pin
		if err := json.Unmarshal(rec, &pin); err != nil {
			dropped++
			log.Debugf("dropping undecodable pin record: %v", err)
			continue
		}

		u, err := url.Parse(pin.Href)
		if err != nil || pin.Href == "" || u.Scheme == "" {
			dropped++
			log.Debugf("dropping pin with invalid url %q", pin.Href)
			continue
		}

		if pin.Time.IsZero() {
			pin.Time = time.Now().UTC()
		}
		pin.ParseTags()

		pins = append(pins, pin)
	}

	if dropped > 0 {
		log.Warnf("dropped %d of %d pin records", dropped, len(raw))
	}

	return pins, dropped, nil
}

// Add saves a pin remotely, replacing any existing pin for the same URL.
// The local snapshot is untouched; resynchronize to observe the change.
func (c *Client) Add(ctx context.Context, pin *pinsuki.Pin) error {
	params := url.Values{}
	params.Set("url", pin.Href)
	params.Set("description", pin.Title)
	params.Set("extended", pin.Extended)
	params.Set("tags", pin.Tags)
	params.Set("shared", pin.Shared)
	params.Set("toread", pin.ToRead)
	params.Set("replace", "yes")

	data, err := c.get(ctx, "posts/add", params)
	if err != nil {
		return err
	}

	return decodeResult(data)
}

// Delete removes the pin for the given URL remotely.
func (c *Client) Delete(ctx context.Context, rawurl string) error {
	params := url.Values{}
	params.Set("url", rawurl)

	data, err := c.get(ctx, "posts/delete", params)
	if err != nil {
		return err
	}

	return decodeResult(data)
}

// LastUpdate returns the remote-reported time of the last modification to
// the account's bookmarks.
func (c *Client) LastUpdate(ctx context.Context) (time.Time, error) {
	data, err := c.get(ctx, "posts/update", nil)
	if err != nil {
		return time.Time{}, err
	}

	var update struct {
		UpdateTime time.Time `json:"update_time"`
	}
	if err := json.Unmarshal(data, &update); err != nil {
		return time.Time{}, &DecodeError{Err: err}
	}
	if update.UpdateTime.IsZero() {
		return time.Time{}, &RespError{Raw: data, Reason: "no update_time field"}
	}

	return update.UpdateTime, nil
}
