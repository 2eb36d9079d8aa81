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
// Package shell quotes values for, and parse-checks, the bash commands
// handed to the build executor.
package shell

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Quote returns s as a single bash word. Strings that need no quoting are
// returned unchanged.
func Quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return q
}

// dquoteEscaper escapes the characters that stay special inside double quotes.
var dquoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")

// EscapeDouble escapes s for use inside a double-quoted bash string.
func EscapeDouble(s string) string {
	return dquoteEscaper.Replace(s)
}

// OneLine collapses runs of whitespace, including newlines, to single spaces
// so s can be embedded in a shell comment.
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Check parses every command as bash and reports the first one that fails.
func Check(cmds []string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	for i, cmd := range cmds {
		if _, err := parser.Parse(strings.NewReader(cmd), ""); err != nil {
			return fmt.Errorf("command %d is not valid bash: %w", i, err)
		}
	}
	return nil
}
