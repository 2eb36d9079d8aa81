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
// Package tarball indexes a flat cache directory of packed npm artifacts
// named <base-name>-<version>.tgz.
package tarball

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	lfs "bennypowers.dev/localdeps/fs"
	"bennypowers.dev/localdeps/packagejson"
	"bennypowers.dev/localdeps/resolve"
)

// Extension is the suffix npm pack gives every artifact.
const Extension = ".tgz"

// BaseName returns the filename prefix npm pack uses for a package.
// Scoped packages are flattened: "@scope/name" becomes "scope-name".
func BaseName(pkg string) string {
	name, scope := packagejson.SplitPackageName(pkg)
	if scope == "" {
		return name
	}
	return scope + "-" + name
}

// globEscaper escapes the characters doublestar treats as pattern syntax.
var globEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
	`{`, `\{`,
	`}`, `\}`,
)

// Pattern returns the glob matching every cached artifact of pkg.
func Pattern(pkg string) string {
	return globEscaper.Replace(BaseName(pkg)) + "-*" + Extension
}

// Lookup is the set of cached versions found for one dependency.
type Lookup struct {
	Name       string
	BaseName   string
	Constraint string
	Versions   []string
}

// Prefix returns the artifact path up to, but excluding, the version.
func (l Lookup) Prefix(cacheDir string) string {
	return filepath.Join(cacheDir, l.BaseName) + "-"
}

// Path returns the artifact path of version.
func (l Lookup) Path(cacheDir, version string) string {
	return l.Prefix(cacheDir) + version + Extension
}

// Index lists cached artifact versions. It only reads filenames, and
// reads each cache directory once.
type Index struct {
	fs     lfs.FileSystem
	logger resolve.Logger
	// listings maps a cache directory to its file names.
	listings map[string][]string
}

// NewIndex creates an Index reading through fsys. logger may be nil.
func NewIndex(fsys lfs.FileSystem, logger resolve.Logger) *Index {
	return &Index{fs: fsys, logger: logger, listings: make(map[string][]string)}
}

// Candidates returns the versions of pkg cached in cacheDir, in filename
// order. A missing cache directory has no candidates.
func (idx *Index) Candidates(pkg, cacheDir string) ([]string, error) {
	names, ok := idx.listings[cacheDir]
	if !ok {
		var err error
		if names, err = idx.list(cacheDir); err != nil {
			return nil, err
		}
		idx.listings[cacheDir] = names
	}

	base := BaseName(pkg)
	pattern := Pattern(pkg)
	var versions []string
	for _, name := range names {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if !ok {
			continue
		}
		version := strings.TrimSuffix(strings.TrimPrefix(name, base+"-"), Extension)
		if version == "" {
			if idx.logger != nil {
				idx.logger.Warning("Ignoring cached artifact without version: %s", name)
			}
			continue
		}
		versions = append(versions, version)
	}
	slices.Sort(versions)
	return versions, nil
}

// list returns the names of the regular files in dir.
func (idx *Index) list(dir string) ([]string, error) {
	entries, err := idx.fs.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if idx.logger != nil {
				idx.logger.Debug("Cache directory %s does not exist", dir)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Lookup finds candidates for every dependency, in sorted name order.
// The first dependency without candidates fails the whole call with a
// *resolve.ResolutionError; no partial result is returned.
func (idx *Index) Lookup(deps map[string]string, cacheDir string) ([]Lookup, error) {
	found := make([]Lookup, 0, len(deps))
	for _, name := range slices.Sorted(maps.Keys(deps)) {
		versions, err := idx.Candidates(name, cacheDir)
		if err != nil {
			return nil, err
		}
		if len(versions) == 0 {
			return nil, &resolve.ResolutionError{Dependency: name, Constraint: deps[name]}
		}
		found = append(found, Lookup{
			Name:       name,
			BaseName:   BaseName(name),
			Constraint: deps[name],
			Versions:   versions,
		})
	}
	return found, nil
}
