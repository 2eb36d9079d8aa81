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
package tarball_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bennypowers.dev/localdeps/internal/mapfs"
	"bennypowers.dev/localdeps/resolve"
	"bennypowers.dev/localdeps/tarball"
)

func TestBaseName(t *testing.T) {
	tests := []struct {
		pkg      string
		expected string
	}{
		{"my-dep", "my-dep"},
		{"@scope/pkg", "scope-pkg"},
		{"@lit/reactive-element", "lit-reactive-element"},
		{"@noslash", "@noslash"},
	}

	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			if got := tarball.BaseName(tt.pkg); got != tt.expected {
				t.Errorf("BaseName(%q) = %q, want %q", tt.pkg, got, tt.expected)
			}
		})
	}
}

func TestPattern(t *testing.T) {
	tests := []struct {
		pkg      string
		expected string
	}{
		{"my-dep", "my-dep-*.tgz"},
		{"@scope/pkg", "scope-pkg-*.tgz"},
		{"we*ird[1]", `we\*ird\[1\]-*.tgz`},
	}

	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			if got := tarball.Pattern(tt.pkg); got != tt.expected {
				t.Errorf("Pattern(%q) = %q, want %q", tt.pkg, got, tt.expected)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	mfs := mapfs.New()
	mfs.Touch("/cache",
		"my-dep-2.0.0.tgz",
		"my-dep-1.0.0.tgz",
		"other-1.0.0.tgz",
		"scope-pkg-3.1.0.tgz",
		"we*ird-1.0.0.tgz",
		"weXird-9.9.9.tgz",
		"my-dep-.tgz",
		"my-dep-1.0.0.tar.gz",
	)
	mfs.AddDir("/cache/my-dep-5.0.0.tgz", 0755)

	tests := []struct {
		name     string
		pkg      string
		expected []string
	}{
		{"unscoped in filename order", "my-dep", []string{"1.0.0", "2.0.0"}},
		{"scoped name is flattened", "@scope/pkg", []string{"3.1.0"}},
		{"glob characters are literal", "we*ird", []string{"1.0.0"}},
		{"no artifacts", "absent", nil},
	}

	idx := tarball.NewIndex(mfs, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := idx.Candidates(tt.pkg, "/cache")
			if err != nil {
				t.Fatalf("Candidates failed: %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCandidatesMissingCache(t *testing.T) {
	idx := tarball.NewIndex(mapfs.New(), nil)
	got, err := idx.Candidates("my-dep", "/nowhere")
	if err != nil {
		t.Fatalf("expected no error for a missing cache, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %v", got)
	}
}

func TestLookup(t *testing.T) {
	mfs := mapfs.New()
	mfs.Touch("/cache", "my-dep-1.0.0.tgz", "my-dep-2.0.0.tgz", "dev-dep-2.1.0.tgz", "scope-pkg-0.1.0.tgz")
	idx := tarball.NewIndex(mfs, nil)

	t.Run("sorted by name", func(t *testing.T) {
		got, err := idx.Lookup(map[string]string{
			"my-dep":     "^1.0.0",
			"dev-dep":    "~2.0.0",
			"@scope/pkg": "*",
		}, "/cache")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		expected := []tarball.Lookup{
			{Name: "@scope/pkg", BaseName: "scope-pkg", Constraint: "*", Versions: []string{"0.1.0"}},
			{Name: "dev-dep", BaseName: "dev-dep", Constraint: "~2.0.0", Versions: []string{"2.1.0"}},
			{Name: "my-dep", BaseName: "my-dep", Constraint: "^1.0.0", Versions: []string{"1.0.0", "2.0.0"}},
		}
		if diff := cmp.Diff(expected, got); diff != "" {
			t.Errorf("Lookup mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing dependency fails whole lookup", func(t *testing.T) {
		got, err := idx.Lookup(map[string]string{
			"my-dep":  "^1.0.0",
			"missing": "^3.0.0",
		}, "/cache")
		if got != nil {
			t.Errorf("expected no partial result, got %v", got)
		}
		var resErr *resolve.ResolutionError
		if !errors.As(err, &resErr) {
			t.Fatalf("expected ResolutionError, got %v", err)
		}
		if resErr.Dependency != "missing" || resErr.Constraint != "^3.0.0" {
			t.Errorf("unexpected error fields: %+v", resErr)
		}
		if want := "could not resolve dependency 'missing (^3.0.0)'"; err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})
}

func TestLookupPath(t *testing.T) {
	l := tarball.Lookup{Name: "@scope/pkg", BaseName: "scope-pkg"}
	if got, want := l.Prefix("/cache"), "/cache/scope-pkg-"; got != want {
		t.Errorf("Prefix = %q, want %q", got, want)
	}
	if got, want := l.Path("/cache/", "1.2.3"), "/cache/scope-pkg-1.2.3.tgz"; got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

type countingFS struct {
	*mapfs.MapFileSystem
	reads int
}

func (c *countingFS) ReadDir(name string) ([]fs.DirEntry, error) {
	c.reads++
	return c.MapFileSystem.ReadDir(name)
}

func TestIndexReadsDirectoryOnce(t *testing.T) {
	mfs := mapfs.New()
	mfs.Touch("/cache", "a-1.0.0.tgz", "b-1.0.0.tgz", "c-1.0.0.tgz")
	mfs.Touch("/other", "a-2.0.0.tgz")
	cfs := &countingFS{MapFileSystem: mfs}

	idx := tarball.NewIndex(cfs, nil)
	if _, err := idx.Lookup(map[string]string{"a": "*", "b": "*", "c": "*"}, "/cache"); err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if cfs.reads != 1 {
		t.Errorf("expected one directory read, got %d", cfs.reads)
	}

	got, err := idx.Candidates("a", "/other")
	if err != nil {
		t.Fatalf("Candidates failed: %v", err)
	}
	if diff := cmp.Diff([]string{"2.0.0"}, got); diff != "" {
		t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
	}
	if cfs.reads != 2 {
		t.Errorf("expected each directory read once, got %d reads", cfs.reads)
	}
}
