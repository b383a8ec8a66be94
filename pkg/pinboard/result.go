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
	"github.com/buger/jsonparser"
)

const resultDone = "done"

// Mutation endpoints report their outcome under one of two field names
// depending on the endpoint family: posts/* uses `result_code`, tags/*
// uses `result`. Both are scanned explicitly so each accepted shape stays
// enumerable and testable on its own.
var resultKeys = []string{"result_code", "result"}

// decodeResult normalizes a mutation response: success iff either result
// field is the literal "done"; otherwise the error message is whichever
// field is non-empty, preferring `result_code`. A response with neither
// field is unrecognized.
func decodeResult(data []byte) error {
	var msgs []string

	for _, key := range resultKeys {
		val, err := jsonparser.GetString(data, key)
		if err != nil {
			continue
		}
		if val == resultDone {
			return nil
		}
		msgs = append(msgs, val)
	}

	for _, msg := range msgs {
		if msg != "" {
			return &RemoteError{Msg: msg}
		}
	}

	return &RespError{Raw: data, Reason: "no result field"}
}
