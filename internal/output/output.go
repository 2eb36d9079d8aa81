/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
// Package output provides shared output utilities for localdeps CLI commands.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"bennypowers.dev/localdeps/fs"
)

// Format renders a command list as text (one command per entry,
// separated by blank lines) or as a JSON array.
func Format(cmds []string, format string) (string, error) {
	switch format {
	case "json":
		if cmds == nil {
			cmds = []string{}
		}
		out, err := json.MarshalIndent(cmds, "", "  ")
		if err != nil {
			return "", fmt.Errorf("error marshaling commands: %w", err)
		}
		return string(out), nil
	case "text", "":
		return strings.Join(cmds, "\n\n"), nil
	}
	return "", fmt.Errorf("invalid format %q: must be 'text' or 'json'", format)
}

// Commands formats and outputs a command list to stdout or a file.
// If viper's "output" flag is set, writes to that file; otherwise prints to stdout.
func Commands(osfs fs.FileSystem, cmds []string, format string) error {
	out, err := Format(cmds, format)
	if err != nil {
		return err
	}
	return Text(osfs, out)
}

// Text writes s followed by a newline to the configured output.
func Text(osfs fs.FileSystem, s string) error {
	if outputPath := viper.GetString("output"); outputPath != "" {
		return osfs.WriteFile(outputPath, []byte(s+"\n"), 0644)
	}
	if s != "" {
		fmt.Println(s)
	}
	return nil
}
