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

// Package logging provides per-unit loggers. Each package grabs its own
// logger with GetLogger("UNIT"); levels can be tuned globally or per unit
// through the debug flag or the PINSUKI_DEBUG environment variable.
package logging

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	log "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const EnvPinsukiDebug = "PINSUKI_DEBUG"

// Disables all logging when true. Used when output must stay
// machine-readable, e.g. when piping search results to dmenu.
var SilentMode bool

const silentLevel = log.Level(math.MaxInt32)

var (
	levels = map[string]log.Level{
		"debug": log.DebugLevel,
		"info":  log.InfoLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"fatal": log.FatalLevel,
		"none":  silentLevel,
	}

	// flag parsing order matters for help output
	allLevels = []string{"debug", "info", "warn", "error", "fatal", "none"}

	globalLevel  = log.WarnLevel
	loggers      = map[string]*log.Logger{}
	loggerLevels = map[string]log.Level{}

	logLevelStyles = map[log.Level]lipgloss.Style{
		log.DebugLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.DebugLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("63")),
		log.InfoLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.InfoLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("36")),
		log.WarnLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.WarnLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("178")),
		log.ErrorLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.ErrorLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("204")),
		log.FatalLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.FatalLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("134")),
	}
)

// GetLogger returns the logger for the given unit, creating it on first
// use. The unit name shows up as a short prefix on every line.
func GetLogger(unit string) *log.Logger {
	if lg, ok := loggers[unit]; ok {
		return lg
	}

	if SilentMode {
		lg := log.New(io.Discard)
		loggers[unit] = lg
		return lg
	}

	lg := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: fmt.Sprintf("[%.4s]", strings.ToUpper(unit)),
	})

	styles := log.DefaultStyles()
	styles.Levels = logLevelStyles
	lg.SetStyles(styles)

	if !isatty.IsTerminal(os.Stderr.Fd()) {
		lg.SetColorProfile(termenv.Ascii)
	}

	if lvl, ok := loggerLevels[unit]; ok {
		lg.SetLevel(lvl)
	} else {
		lg.SetLevel(globalLevel)
	}

	loggers[unit] = lg
	return lg
}

// SetLevel sets the level on every known logger and on loggers created
// afterwards. Per-unit overrides set with SetUnitLevel are preserved.
func SetLevel(lvl log.Level) {
	globalLevel = lvl
	for unit, lg := range loggers {
		if _, override := loggerLevels[unit]; override {
			continue
		}
		lg.SetLevel(lvl)
	}
}

// SetUnitLevel overrides the level for a single unit.
func SetUnitLevel(unit string, lvl log.Level) {
	loggerLevels[unit] = lvl
	if lg, ok := loggers[unit]; ok {
		lg.SetLevel(lvl)
	}
}

// Silence drops all output on every known and future logger.
func Silence() {
	SilentMode = true
	for _, lg := range loggers {
		lg.SetOutput(io.Discard)
		lg.SetLevel(silentLevel)
	}
}

func listLoggers() []string {
	units := make([]string, 0, len(loggers))
	for unit := range loggers {
		units = append(units, unit)
	}
	return units
}
