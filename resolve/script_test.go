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
package resolve_test

import (
	"strings"
	"testing"

	"bennypowers.dev/localdeps/internal/shell"
	"bennypowers.dev/localdeps/resolve"
)

func TestScriptPreamble(t *testing.T) {
	preamble := resolve.NewScript().Preamble()

	if err := shell.Check([]string{preamble}); err != nil {
		t.Fatalf("Preamble is not valid shell: %v\n%s", err, preamble)
	}
	for _, want := range []string{
		`SEMVER_BIN=""`,
		`if [ -f "$NODE_LIBS/npm/node_modules/semver/bin/semver.js" ]; then`,
		`elif [ -f "/usr/share/nodejs/semver/bin/semver.js" ]; then`,
		`echo "Error: semver.js not found" >&2`,
		"exit 1",
	} {
		if !strings.Contains(preamble, want) {
			t.Errorf("expected preamble to contain %q, got:\n%s", want, preamble)
		}
	}
	if !strings.HasPrefix(preamble, "# find semver.js") {
		t.Errorf("expected leading comment, got:\n%s", preamble)
	}
}

func TestScriptPreambleCustomLocations(t *testing.T) {
	s := &resolve.Script{Locations: []string{"/opt/semver.js"}}
	preamble := s.Preamble()

	if err := shell.Check([]string{preamble}); err != nil {
		t.Fatalf("Preamble is not valid shell: %v\n%s", err, preamble)
	}
	if strings.Contains(preamble, "elif") {
		t.Errorf("single location should not need elif:\n%s", preamble)
	}
	if !strings.Contains(preamble, `SEMVER_BIN="/opt/semver.js"`) {
		t.Errorf("expected custom location, got:\n%s", preamble)
	}
}

func TestScriptSelect(t *testing.T) {
	tests := []struct {
		name       string
		dependency string
		constraint string
		candidates []string
		prefix     string
		contains   []string
	}{
		{
			name:       "unscoped",
			dependency: "my-dep",
			constraint: "^1.0.0",
			candidates: []string{"1.0.0", "2.0.0"},
			prefix:     "/cache/my-dep-",
			contains: []string{
				"# find version that satisfies my-dep (^1.0.0)",
				`"$SEMVER_BIN" -r ` + shell.Quote("^1.0.0") + " 1.0.0 2.0.0 | tail -1",
				`if [ -z "$BEST_VERSION" ]; then`,
				`TARBALLS="$TARBALLS /cache/my-dep-$BEST_VERSION.tgz"`,
			},
		},
		{
			name:       "scoped with comparison range",
			dependency: "@scope/pkg",
			constraint: ">=1.0.0 <2.0.0",
			candidates: []string{"1.5.0"},
			prefix:     "/cache/scope-pkg-",
			contains: []string{
				`-r '>=1.0.0 <2.0.0' 1.5.0`,
				"# find version that satisfies @scope/pkg (>=1.0.0 <2.0.0)",
				"could not resolve dependency",
				`TARBALLS="$TARBALLS /cache/scope-pkg-$BEST_VERSION.tgz"`,
			},
		},
		{
			name:       "cache path with shell metacharacters",
			dependency: "dep",
			constraint: "*",
			candidates: []string{"1.0.0"},
			prefix:     `/my "cache"/$HOME/dep-`,
			contains: []string{
				`-r '*' 1.0.0`,
				`TARBALLS="$TARBALLS /my \"cache\"/\$HOME/dep-$BEST_VERSION.tgz"`,
			},
		},
	}

	s := resolve.NewScript()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := s.Select(tt.dependency, tt.constraint, tt.candidates, tt.prefix)
			if err := shell.Check([]string{cmd}); err != nil {
				t.Fatalf("Select is not valid shell: %v\n%s", err, cmd)
			}
			for _, want := range tt.contains {
				if !strings.Contains(cmd, want) {
					t.Errorf("expected command to contain %q, got:\n%s", want, cmd)
				}
			}
		})
	}
}
