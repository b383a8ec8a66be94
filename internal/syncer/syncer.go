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

// Package syncer orchestrates the remote client, the snapshot store and
// the search engine. It owns the lazily-loaded in-memory snapshot: absent
// until the first access, then cached for the lifetime of the process or
// until a sync replaces it wholesale.
//
// All operations are synchronous. Concurrent syncs against one cache
// directory race on the files and must be serialized by the caller.
package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/pinsuki/pinsuki"
	"github.com/pinsuki/pinsuki/internal/cache"
	"github.com/pinsuki/pinsuki/pkg/logging"
	"github.com/pinsuki/pinsuki/pkg/search"
)

var log = logging.GetLogger("SYNC")

// Client is the remote surface the syncer needs. *pinboard.Client
// implements it.
type Client interface {
	AllPins(ctx context.Context) ([]pinsuki.Pin, int, error)
	TagsFreq(ctx context.Context) ([]pinsuki.Tag, error)
	LastUpdate(ctx context.Context) (time.Time, error)
	Add(ctx context.Context, pin *pinsuki.Pin) error
	Delete(ctx context.Context, rawurl string) error
	RenameTag(ctx context.Context, old, new string) error
	DeleteTag(ctx context.Context, name string) error
	SuggestTags(ctx context.Context, rawurl string) ([]string, error)
}

// Syncer drives full snapshot replacement and exposes search and the
// remote mutations.
type Syncer struct {
	client Client
	store  *cache.Store

	// lazily loaded; nil until first access or sync
	snap *pinsuki.Snapshot
}

func New(client Client, store *cache.Store) *Syncer {
	return &Syncer{client: client, store: store}
}

// Snapshot returns the in-memory snapshot, loading it from the store on
// first access. A load failure, including cache.ErrNoSnapshot, propagates
// and leaves the syncer unloaded.
func (s *Syncer) Snapshot() (*pinsuki.Snapshot, error) {
	if s.snap != nil {
		return s.snap, nil
	}

	snap, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	s.snap = snap

	return s.snap, nil
}

// Refresh drops the in-memory snapshot so the next access reloads from
// disk.
func (s *Syncer) Refresh() {
	s.snap = nil
}

// Outdated reports whether a snapshot taken at `since` is stale: true iff
// since is strictly earlier than the remote-reported last update. Equal
// timestamps are not stale.
func (s *Syncer) Outdated(ctx context.Context, since time.Time) (bool, error) {
	remote, err := s.client.LastUpdate(ctx)
	if err != nil {
		return false, err
	}

	return since.Before(remote), nil
}

// Sync fetches the complete pin and tag collections and replaces the
// snapshot on disk and in memory. The two halves commit as one
// transaction: if either fetch or the write fails, neither on-disk file
// changes and the in-memory snapshot stays as it was.
func (s *Syncer) Sync(ctx context.Context) error {
	pins, dropped, err := s.client.AllPins(ctx)
	if err != nil {
		return fmt.Errorf("fetching pins: %w", err)
	}
	tags, err := s.client.TagsFreq(ctx)
	if err != nil {
		return fmt.Errorf("fetching tags: %w", err)
	}

	snap := &pinsuki.Snapshot{Pins: pins, Tags: tags}
	if err := s.store.Replace(snap); err != nil {
		return err
	}

	s.snap = snap
	log.Infof("synchronized %d pins, %d tags (%d records dropped)",
		len(pins), len(tags), dropped)

	return nil
}

// SearchPins runs a query over the snapshot's pins. tagOnly restricts
// matching to the tag text. Returns nil when nothing matches.
func (s *Syncer) SearchPins(query string, mode search.Mode, tagOnly bool) ([]*pinsuki.Pin, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	if tagOnly {
		return search.PinsByTag(snap.Pins, query, mode), nil
	}
	return search.Pins(snap.Pins, query, mode), nil
}

// SearchTags runs a query over the snapshot's tag names.
func (s *Syncer) SearchTags(query string, mode search.Mode) ([]*pinsuki.Tag, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	return search.Tags(snap.Tags, query, mode), nil
}

// The mutations below pass straight through to the remote and do not
// touch the snapshot; it is only brought up to date by an explicit Sync.

func (s *Syncer) Add(ctx context.Context, pin *pinsuki.Pin) error {
	return s.client.Add(ctx, pin)
}

func (s *Syncer) Delete(ctx context.Context, rawurl string) error {
	return s.client.Delete(ctx, rawurl)
}

func (s *Syncer) RenameTag(ctx context.Context, old, new string) error {
	return s.client.RenameTag(ctx, old, new)
}

func (s *Syncer) DeleteTag(ctx context.Context, name string) error {
	return s.client.DeleteTag(ctx, name)
}

func (s *Syncer) SuggestTags(ctx context.Context, rawurl string) ([]string, error) {
	return s.client.SuggestTags(ctx, rawurl)
}
