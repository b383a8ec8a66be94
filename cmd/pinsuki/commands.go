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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/pinsuki/pinsuki"
	"github.com/pinsuki/pinsuki/internal/cache"
	"github.com/pinsuki/pinsuki/internal/config"
	"github.com/pinsuki/pinsuki/pkg/search"
)

var syncCmd = &cli.Command{
	Name:  "sync",
	Usage: "replace the local snapshot with the remote state",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "check",
			Usage: "only report whether the snapshot is stale",
		},
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "sync even when the snapshot is up to date",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		stale, err := snapshotStale(ctx)
		if err != nil {
			return err
		}

		if cmd.Bool("check") {
			if stale {
				fmt.Println("snapshot is stale")
			} else {
				fmt.Println("snapshot is up to date")
			}
			return nil
		}

		if !stale && !cmd.Bool("force") {
			log.Info("snapshot is up to date")
			return nil
		}

		return snc.Sync(ctx)
	},
}

// snapshotStale compares the pins cache mtime against the remote last
// update time. A missing snapshot is always stale.
func snapshotStale(ctx context.Context) (bool, error) {
	info, err := os.Stat(cachePath())
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}

	return snc.Outdated(ctx, info.ModTime().UTC())
}

func cachePath() string {
	dir, _ := cfg.EnsureCacheDir()
	return filepath.Join(dir, cache.PinsFileName)
}

var searchCmd = &cli.Command{
	Name:      "search",
	Aliases:   []string{"s"},
	Usage:     "search the local snapshot",
	UsageText: "pinsuki search [OPTIONS] [KEYWORD...]\n\nEvery keyword must match. Prefix the first keyword with ~ for fuzzy matching.",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "format output: %u url, %t title, %T tags, %d description",
		},
		&cli.BoolFlag{
			Name:  "fuzzy",
			Usage: "fuzzy (ordered subsequence) matching",
		},
		&cli.BoolFlag{
			Name:  "tags",
			Usage: "search tag names instead of pins",
		},
		&cli.BoolFlag{
			Name:  "tag-only",
			Usage: "match pins by tag text only",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() == 0 {
			return listPins(cmd)
		}

		keywords := cmd.Args().Slice()
		query := keywords[0]
		mode := search.Exact
		if cmd.Bool("fuzzy") || cfg.FuzzySearch {
			mode = search.Fuzzy
		}

		// ~ prefix switches to fuzzy
		if strings.HasPrefix(query, "~") {
			mode = search.Fuzzy
			query = query[1:]
		}

		if cmd.Bool("tags") {
			tags, err := snc.SearchTags(query, mode)
			if err != nil {
				return describeNoSnapshot(err)
			}
			for _, tag := range tags {
				fmt.Printf("%s\t%d\n", tag.Name, tag.Count)
			}
			return nil
		}

		tagOnly := cmd.Bool("tag-only") || cfg.TagOnlySearch
		pins, err := snc.SearchPins(query, mode, tagOnly)
		if err != nil {
			return describeNoSnapshot(err)
		}
		for _, kw := range keywords[1:] {
			pins = search.Narrow(pins, kw, mode, tagOnly)
		}

		return formatPrint(cmd.String("format"), pins)
	},
}

func listPins(cmd *cli.Command) error {
	snap, err := snc.Snapshot()
	if err != nil {
		return describeNoSnapshot(err)
	}

	pins := make([]*pinsuki.Pin, 0, len(snap.Pins))
	for i := range snap.Pins {
		pins = append(pins, &snap.Pins[i])
	}

	return formatPrint(cmd.String("format"), pins)
}

func describeNoSnapshot(err error) error {
	if errors.Is(err, cache.ErrNoSnapshot) {
		return fmt.Errorf("%w\nrun `pinsuki sync` first", err)
	}
	return err
}

var addCmd = &cli.Command{
	Name:      "add",
	Usage:     "save a pin remotely",
	UsageText: "pinsuki add [OPTIONS] URL",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "title",
			Aliases: []string{"t"},
			Usage:   "pin `title`",
		},
		&cli.StringSliceFlag{
			Name:  "tag",
			Usage: "tag to attach, repeatable",
		},
		&cli.BoolFlag{
			Name:    "private",
			Aliases: []string{"p"},
			Usage:   "do not share the pin",
		},
		&cli.BoolFlag{
			Name:  "toread",
			Usage: "mark as to-read",
		},
		&cli.StringFlag{
			Name:    "desc",
			Aliases: []string{"d"},
			Usage:   "extended description",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() != 1 {
			return errors.New("add needs exactly one URL")
		}

		pin, err := pinsuki.NewPin(
			cmd.Args().First(),
			cmd.String("title"),
			cmd.StringSlice("tag"),
			cmd.Bool("private"),
			cmd.Bool("toread"),
			cmd.String("desc"),
		)
		if err != nil {
			return err
		}

		if err := snc.Add(ctx, pin); err != nil {
			return err
		}
		log.Infof("saved %s", pin.Href)
		return nil
	},
}

var rmCmd = &cli.Command{
	Name:      "rm",
	Usage:     "delete a pin remotely",
	UsageText: "pinsuki rm URL",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() != 1 {
			return errors.New("rm needs exactly one URL")
		}
		return snc.Delete(ctx, cmd.Args().First())
	},
}

var tagsCmd = &cli.Command{
	Name:  "tags",
	Usage: "tag operations",
	Commands: []*cli.Command{
		{
			Name:  "ls",
			Usage: "list tags with their usage counts",
			Action: func(_ context.Context, _ *cli.Command) error {
				snap, err := snc.Snapshot()
				if err != nil {
					return describeNoSnapshot(err)
				}
				for _, tag := range snap.Tags {
					fmt.Printf("%s\t%d\n", tag.Name, tag.Count)
				}
				return nil
			},
		},
		{
			Name:      "rename",
			Usage:     "rename a tag on every pin",
			UsageText: "pinsuki tags rename OLD NEW",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() != 2 {
					return errors.New("rename needs OLD and NEW")
				}
				return snc.RenameTag(ctx, cmd.Args().Get(0), cmd.Args().Get(1))
			},
		},
		{
			Name:      "rm",
			Usage:     "delete a tag from every pin",
			UsageText: "pinsuki tags rm TAG",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() != 1 {
					return errors.New("rm needs exactly one tag")
				}
				return snc.DeleteTag(ctx, cmd.Args().First())
			},
		},
		{
			Name:      "suggest",
			Usage:     "suggest popular tags for a URL",
			UsageText: "pinsuki tags suggest URL",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() != 1 {
					return errors.New("suggest needs exactly one URL")
				}
				tags, err := snc.SuggestTags(ctx, cmd.Args().First())
				if err != nil {
					return err
				}
				for _, tag := range tags {
					fmt.Println(tag)
				}
				return nil
			},
		},
	},
}

var configCmd = &cli.Command{
	Name:  "config",
	Usage: "configuration helpers",
	Commands: []*cli.Command{
		{
			Name:  "init",
			Usage: "write a default config file",
			Action: func(_ context.Context, _ *cli.Command) error {
				path, err := config.InitConfigFile()
				if err != nil {
					return err
				}
				fmt.Println(path)
				return nil
			},
		},
	},
}
