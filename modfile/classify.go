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
// Package modfile disables go.mod replace directives that point at sibling
// directories, so a module can be built away from the tree it was
// developed in.
package modfile

import (
	"regexp"
	"strings"
	"unicode"
)

// localTarget matches "<module> [<version>] => ./path" and "... => ../path".
var localTarget = regexp.MustCompile(`^\S+([ \t]+\S+)?[ \t]+=>[ \t]+\.\.?/`)

// IsLocal reports whether a directive body, with or without leading
// whitespace, redirects a module to a relative filesystem path. Anything
// it cannot recognise is not local.
func IsLocal(directive string) bool {
	return localTarget.MatchString(strings.TrimLeftFunc(directive, unicode.IsSpace))
}
