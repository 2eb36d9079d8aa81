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
package resolve

import (
	"fmt"
	"strings"

	"bennypowers.dev/localdeps/internal/shell"
)

// DefaultSemverScripts are the locations searched for the semver.js evaluator,
// in order: the copy bundled with npm next to the node binary (snap
// layout), then the Debian nodejs package.
var DefaultSemverScripts = []string{
	"$NODE_LIBS/npm/node_modules/semver/bin/semver.js",
	"/usr/share/nodejs/semver/bin/semver.js",
}

// nodeLibs resolves the node_modules directory of the node on PATH.
const nodeLibs = `NODE_LIBS="$(dirname "$(dirname "$(realpath "$(command -v node)")")")/lib/node_modules"`

// Script defers version selection to an external semver evaluator run by
// the executor. Nothing is resolved in process: Preamble locates the
// evaluator and Select emits one evaluation per dependency.
type Script struct {
	// Locations are tried in order; each may reference $NODE_LIBS.
	Locations []string
}

// NewScript returns a Script probing DefaultSemverScripts.
func NewScript() *Script {
	return &Script{Locations: DefaultSemverScripts}
}

// Preamble returns a command that sets SEMVER_BIN to the first existing
// location, or exits non-zero with a diagnostic when none exists.
func (s *Script) Preamble() string {
	var b strings.Builder
	b.WriteString("# find semver.js bundled with node\n")
	b.WriteString("SEMVER_BIN=\"\"\n")
	b.WriteString(nodeLibs + "\n")
	for i, loc := range s.Locations {
		keyword := "elif"
		if i == 0 {
			keyword = "if"
		}
		fmt.Fprintf(&b, "%s [ -f \"%s\" ]; then\n", keyword, loc)
		fmt.Fprintf(&b, "    SEMVER_BIN=\"%s\"\n", loc)
	}
	if len(s.Locations) > 0 {
		b.WriteString("fi\n")
	}
	b.WriteString("\n")
	b.WriteString("if [ -z \"$SEMVER_BIN\" ]; then\n")
	b.WriteString("    echo \"Error: semver.js not found\" >&2\n")
	b.WriteString("    exit 1\n")
	b.WriteString("fi")
	return b.String()
}

// Select returns a command that evaluates constraint against candidates,
// aborts when nothing matches, and appends artifactPrefix + version + ".tgz"
// to TARBALLS. The evaluator prints matches in ascending order, so the last
// line is the best one.
func (s *Script) Select(dependency, constraint string, candidates []string, artifactPrefix string) string {
	quoted := make([]string, len(candidates))
	for i, c := range candidates {
		quoted[i] = shell.Quote(c)
	}
	msg := fmt.Sprintf("Error: could not resolve dependency '%s (%s)'", dependency, constraint)

	var b strings.Builder
	fmt.Fprintf(&b, "# find version that satisfies %s (%s)\n", shell.OneLine(dependency), shell.OneLine(constraint))
	fmt.Fprintf(&b, "BEST_VERSION=$(\"$SEMVER_BIN\" -r %s %s | tail -1)\n", shell.Quote(constraint), strings.Join(quoted, " "))
	b.WriteString("if [ -z \"$BEST_VERSION\" ]; then\n")
	fmt.Fprintf(&b, "    echo %s >&2\n", shell.Quote(msg))
	b.WriteString("    exit 1\n")
	b.WriteString("fi\n")
	fmt.Fprintf(&b, "TARBALLS=\"$TARBALLS %s$BEST_VERSION.tgz\"", shell.EscapeDouble(artifactPrefix))
	return b.String()
}
