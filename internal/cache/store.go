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

// Package cache persists the snapshot to two files under the cache
// directory. A missing file means "never synchronized" and is reported as
// ErrNoSnapshot; an unreadable or corrupt file is a real error and always
// propagates, so stale-but-present data is never mistaken for absent.
//
// Writes go through temp files promoted by rename. A snapshot replacement
// prepares both temp files before promoting either one, so a failed half
// leaves the previous pair intact on disk.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pinsuki/pinsuki"
	"github.com/pinsuki/pinsuki/pkg/logging"
)

var log = logging.GetLogger("CACHE")

const (
	PinsFileName = "pins.cache"
	TagsFileName = "tags.cache"
)

// ErrNoSnapshot reports that no synchronization has ever completed: one or
// both cache files do not exist.
var ErrNoSnapshot = errors.New("no local snapshot")

// Store reads and writes the two snapshot files. Not safe for
// unsynchronized concurrent use over the same directory.
type Store struct {
	dir      string
	pinsPath string
	tagsPath string
}

// NewStore opens a store over the given directory. The directory must
// already exist.
func NewStore(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cache dir: %s is not a directory", dir)
	}

	return &Store{
		dir:      dir,
		pinsPath: filepath.Join(dir, PinsFileName),
		tagsPath: filepath.Join(dir, TagsFileName),
	}, nil
}

// Load reads the full snapshot. Returns ErrNoSnapshot when either file is
// absent; decode failures propagate as-is.
func (s *Store) Load() (*pinsuki.Snapshot, error) {
	var snap pinsuki.Snapshot

	if err := loadFile(s.pinsPath, &snap.Pins); err != nil {
		return nil, err
	}
	if err := loadFile(s.tagsPath, &snap.Tags); err != nil {
		return nil, err
	}

	log.Debugf("loaded snapshot: %d pins, %d tags", len(snap.Pins), len(snap.Tags))
	return &snap, nil
}

// Replace writes the snapshot, replacing any previous one. Both files are
// staged as temp files first and only then promoted, keeping the on-disk
// pair consistent if the process dies mid-write.
func (s *Store) Replace(snap *pinsuki.Snapshot) error {
	pinsTmp, err := stageFile(s.pinsPath, snap.Pins)
	if err != nil {
		return err
	}
	tagsTmp, err := stageFile(s.tagsPath, snap.Tags)
	if err != nil {
		os.Remove(pinsTmp)
		return err
	}

	if err := os.Rename(pinsTmp, s.pinsPath); err != nil {
		os.Remove(pinsTmp)
		os.Remove(tagsTmp)
		return fmt.Errorf("promoting %s: %w", s.pinsPath, err)
	}
	if err := os.Rename(tagsTmp, s.tagsPath); err != nil {
		os.Remove(tagsTmp)
		return fmt.Errorf("promoting %s: %w", s.tagsPath, err)
	}

	log.Debugf("replaced snapshot: %d pins, %d tags", len(snap.Pins), len(snap.Tags))
	return nil
}

func loadFile(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNoSnapshot, path)
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("corrupt cache file %s: %w", path, err)
	}

	return nil
}

// stageFile writes the encoded collection next to its final path and
// returns the temp path.
func stageFile(path string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return "", fmt.Errorf("staging %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("staging %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("staging %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("staging %s: %w", path, err)
	}

	return f.Name(), nil
}
