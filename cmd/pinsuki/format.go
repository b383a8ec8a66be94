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
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/pinsuki/pinsuki"
)

// formatPin translates the %-style format string into a template.
func formatPin(format string) string {
	out := strings.Clone(format)

	// Comma separated list of tags
	out = strings.ReplaceAll(out, "%T", `{{ join .TagList "," }}`)

	// url
	out = strings.ReplaceAll(out, "%u", `{{.Href}}`)

	// title
	out = strings.ReplaceAll(out, "%t", `{{.Title}}`)

	// description
	out = strings.ReplaceAll(out, "%d", `{{.Extended}}`)

	r := strings.NewReplacer(`\t`, "\t", `\n`, "\n")
	return r.Replace(out)
}

// formatPrint writes one line per pin; with an empty format only the URL
// is printed, which keeps the output dmenu-friendly.
func formatPrint(format string, pins []*pinsuki.Pin) error {
	if format == "" {
		for _, pin := range pins {
			fmt.Println(pin.Href)
		}
		return nil
	}

	funcs := template.FuncMap{"join": strings.Join}
	tmpl, err := template.New("format").Funcs(funcs).Parse(formatPin(format))
	if err != nil {
		return err
	}

	for _, pin := range pins {
		if err := tmpl.Execute(os.Stdout, pin); err != nil {
			return err
		}
		fmt.Println()
	}

	return nil
}
