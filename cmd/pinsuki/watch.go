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

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"github.com/pinsuki/pinsuki/internal/cache"
)

// The cache files are promoted by rename, so a sync from another process
// shows up as Create events on the final file names. Watching the
// directory instead of the files keeps the watch valid across the
// replacement.
var watchCmd = &cli.Command{
	Name:  "watch",
	Usage: "reload and report whenever another process replaces the snapshot",
	Action: func(ctx context.Context, _ *cli.Command) error {
		dir, err := cfg.EnsureCacheDir()
		if err != nil {
			return err
		}

		w, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer w.Close()

		if err := w.Add(dir); err != nil {
			return err
		}

		pinsPath := filepath.Join(dir, cache.PinsFileName)
		log.Infof("watching %s", dir)

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()

			case event, ok := <-w.Events:
				if !ok {
					return nil
				}
				if event.Name != pinsPath || !event.Has(fsnotify.Create) {
					continue
				}

				snc.Refresh()
				snap, err := snc.Snapshot()
				if err != nil {
					log.Errorf("reloading snapshot: %v", err)
					continue
				}
				fmt.Printf("snapshot replaced: %d pins, %d tags\n",
					len(snap.Pins), len(snap.Tags))

			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				log.Errorf("watch: %v", err)
			}
		}
	},
}
