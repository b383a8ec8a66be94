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

// Package pinboard is the client for the Pinboard v1 JSON API.
//
// The remote protocol is inconsistent in several places: mutation
// endpoints report success under two different field names, the tag
// frequency endpoint switches between a map and a list depending on the
// account, and the suggest endpoint returns heterogeneous objects. This
// package normalizes all of that into typed results and typed, recoverable
// errors. There is no built-in retry or backoff: rate-limit responses are
// surfaced as a ServerError and retrying is the caller's call.
package pinboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pinsuki/pinsuki/pkg/logging"
)

var log = logging.GetLogger("API")

// Pinboard asks clients to keep at least this much time between requests.
const pacingInterval = 3 * time.Second

// Client talks to the remote service. Calls carry no shared mutable state
// and are independently safe for concurrent use.
type Client struct {
	base    *url.URL
	token   string
	hc      *http.Client
	limiter *rate.Limiter
}

// Options tunes a Client. The zero value gives the public Pinboard API,
// no explicit timeout and no request pacing.
type Options struct {
	// Base URL of the API, e.g. "https://api.pinboard.in/v1/".
	APIBase string

	// Transport timeout for every call. Zero means no explicit timeout.
	Timeout time.Duration

	// Space requests by the documented rate-limit guidance. This is
	// pacing, not retry: a 429 still surfaces as an error.
	Pacing bool
}

// NewClient builds a Client with the given auth token.
func NewClient(token string, opts Options) (*Client, error) {
	if opts.APIBase == "" {
		opts.APIBase = "https://api.pinboard.in/v1/"
	}

	base, err := url.Parse(opts.APIBase)
	if err != nil {
		return nil, fmt.Errorf("invalid api base %q: %w", opts.APIBase, err)
	}

	c := &Client{
		base:  base,
		token: token,
		hc:    &http.Client{Timeout: opts.Timeout},
	}
	if opts.Pacing {
		c.limiter = rate.NewLimiter(rate.Every(pacingInterval), 1)
	}

	return c, nil
}

// get performs one API call and returns the raw response body. Every
// request carries the json format indicator and the auth token on top of
// the endpoint specific params.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u, err := c.base.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("building endpoint %q: %w", endpoint, err)
	}

	q := u.Query()
	for k, vals := range params {
		for _, v := range vals {
			q.Set(k, v)
		}
	}
	q.Set("format", "json")
	q.Set("auth_token", c.token)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	log.Debugf("GET %s", endpoint)
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pinboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return body, nil
}
