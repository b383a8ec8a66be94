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
	"fmt"
	"net/http"
)

// ServerError is a non-success HTTP status, including rate limiting. The
// message is the canonical reason phrase for the status.
type ServerError struct {
	Code int
}

func (e *ServerError) Error() string {
	text := http.StatusText(e.Code)
	if text == "" {
		text = "unknown status"
	}
	return fmt.Sprintf("server error: %s", text)
}

// RemoteError carries a failure message reported by the remote in a
// result field, e.g. "item not found". The message is kept verbatim.
type RemoteError struct {
	Msg string
}

func (e *RemoteError) Error() string {
	return e.Msg
}

// RespError flags a response whose shape this client does not recognize:
// protocol drift or a broken remote. The raw payload is retained for
// diagnosis.
type RespError struct {
	Raw    []byte
	Reason string
}

func (e *RespError) Error() string {
	return fmt.Sprintf("unrecognized response from server: %s", e.Reason)
}

// DecodeError is a local schema mismatch while decoding a response the
// client expected to understand.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
