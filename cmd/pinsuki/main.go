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

// Command line entry point for pinsuki
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/pinsuki/pinsuki/internal/cache"
	"github.com/pinsuki/pinsuki/internal/config"
	"github.com/pinsuki/pinsuki/internal/syncer"
	"github.com/pinsuki/pinsuki/pkg/logging"
	"github.com/pinsuki/pinsuki/pkg/pinboard"
)

var log = logging.GetLogger("MAIN")

// set up in app.Before, shared by all commands
var (
	cfg *config.Config
	snc *syncer.Syncer
)

func main() {
	app := cli.Command{}

	app.Name = "pinsuki"
	app.Usage = "offline-first pinboard client with exact and fuzzy search"
	app.Description = `
pinsuki keeps a full local snapshot of your pinboard bookmarks and tags and
searches it offline. Mutations (add, rm, tags rename/rm) go straight to the
remote; run 'pinsuki sync' to bring the snapshot up to date.

The default search output is dmenu-compatible; use -f to format each line,
e.g. 'pinsuki search -f "%u | %t" vim'. Prefix the first keyword with ~ to
search fuzzily: 'pinsuki search ~dtm' matches "datetime".`
	app.Suggest = true
	app.EnableShellCompletion = true

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "config `path`",
			DefaultText: "~/.config/pinsuki/config.toml",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "override the snapshot cache `dir`",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "suppress all log output",
			Action: func(_ context.Context, _ *cli.Command, val bool) error {
				if val {
					logging.Silence()
				}
				return nil
			},
		},
		logging.DebugFlag,
	}

	app.Before = func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		var err error
		if cfg, err = config.Load(cmd.String("config")); err != nil {
			return ctx, err
		}
		if dir := cmd.String("cache-dir"); dir != "" {
			cfg.CacheDir = dir
		}

		cacheDir, err := cfg.EnsureCacheDir()
		if err != nil {
			return ctx, err
		}
		store, err := cache.NewStore(cacheDir)
		if err != nil {
			return ctx, err
		}

		client, err := pinboard.NewClient(cfg.AuthToken, pinboard.Options{
			APIBase: cfg.APIBase,
			Timeout: cfg.Timeout.Duration,
			Pacing:  cfg.RequestPacing,
		})
		if err != nil {
			return ctx, err
		}

		snc = syncer.New(client, store)
		return ctx, nil
	}

	app.Commands = []*cli.Command{
		syncCmd,
		searchCmd,
		addCmd,
		rmCmd,
		tagsCmd,
		watchCmd,
		configCmd,
	}

	app.ExitErrHandler = func(_ context.Context, _ *cli.Command, err error) {
		if err != nil {
			if err == logging.ErrHelpQuit {
				os.Exit(0)
			}
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
