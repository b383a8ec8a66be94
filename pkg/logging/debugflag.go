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

package logging

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
)

var DebugFlag = &cli.StringFlag{
	Name:        "debug",
	Usage:       debugHelp,
	DefaultText: "warn",
	Sources:     cli.EnvVars(EnvPinsukiDebug),
	Action: func(_ context.Context, _ *cli.Command, val string) error {
		if SilentMode {
			Silence()
			return nil
		}
		return ParseDebugLevels(val)
	},
}

// errors
var (
	ErrUnknownLevel = errors.New("unknown debug level")
	ErrHelpQuit     = errors.New("help quit")
	ErrParseUnitLvl = errors.New("cannot parse unit level")
)

var debugHelp = `Logging level for all units {debug, info, warn, error, fatal, none}
	You may also specify <global-level>,<unit>=<level>,<unit2>=<level>,...
	Use 'debug=list' to list available units`

func parseLevel(lvl string) (string, error) {
	if slices.Contains(allLevels, lvl) {
		return lvl, nil
	}
	return "", ErrUnknownLevel
}

func parseUnitLvl(arg string) error {
	tokens := strings.Split(arg, "=")
	if len(tokens) != 2 {
		return ErrParseUnitLvl
	}
	unit, lvl := tokens[0], tokens[1]

	if !slices.Contains(allLevels, lvl) {
		return fmt.Errorf("%w %s", ErrUnknownLevel, lvl)
	}
	SetUnitLevel(unit, levels[lvl])

	return nil
}

// ParseDebugLevels handles the debug flag syntax: a global level optionally
// followed by per-unit overrides.
func ParseDebugLevels(val string) error {
	args := strings.Split(val, ",")

	if args[0] == "list" {
		fmt.Printf("available levels: [%s]\n", strings.Join(allLevels, ","))
		fmt.Printf("available units: [%s]\n", strings.Join(listLoggers(), ","))
		return ErrHelpQuit
	}

	global, err := parseLevel(args[0])
	if err != nil {
		return fmt.Errorf("%w `%s'", err, args[0])
	}
	SetLevel(levels[global])

	for _, arg := range args[1:] {
		if err = parseUnitLvl(arg); err != nil {
			return fmt.Errorf("%w `%s'", err, arg)
		}
	}

	return nil
}
