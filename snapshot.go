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

package pinsuki

// Tag is a label with its aggregate usage count across all pins. Names are
// unique within a snapshot and counts are never negative.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Snapshot is one full local copy of the remote pin and tag collections,
// captured together by a single synchronization pass. It is held read-only
// in memory and replaced wholesale by the next successful sync; individual
// records are never mutated in place.
type Snapshot struct {
	Pins []Pin
	Tags []Tag
}
