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
// Package install generates the shell commands that install a package's
// dependencies from cached tarballs without consulting a registry.
package install

import (
	"fmt"

	"bennypowers.dev/localdeps/fs"
	"bennypowers.dev/localdeps/internal/shell"
	"bennypowers.dev/localdeps/resolve"
	"bennypowers.dev/localdeps/tarball"
)

const (
	// Accumulator initializes the list of artifact paths to install.
	Accumulator = "TARBALLS="

	// Command installs every accumulated artifact in one invocation. npm
	// consults the registry for transitive metadata when tarballs are
	// installed one at a time, so they must all be passed together.
	Command = "npm install --offline --include=dev --no-package-lock $TARBALLS"
)

// Builder turns a dependency map into an ordered command list.
type Builder struct {
	index    *tarball.Index
	resolver resolve.Resolver
	script   *resolve.Script
	logger   resolve.Logger
}

// New creates a Builder that resolves versions in process.
func New(fsys fs.FileSystem, logger resolve.Logger) *Builder {
	return &Builder{
		index:    tarball.NewIndex(fsys, logger),
		resolver: resolve.NewSemverResolver(logger),
		logger:   logger,
	}
}

// WithResolver returns a new Builder that resolves versions with r.
func (b *Builder) WithResolver(r resolve.Resolver) *Builder {
	return &Builder{
		index:    b.index,
		resolver: r,
		logger:   b.logger,
	}
}

// WithScript returns a new Builder that defers version selection to the
// executor, using s to locate and invoke the semver evaluator.
func (b *Builder) WithScript(s *resolve.Script) *Builder {
	return &Builder{
		index:    b.index,
		resolver: b.resolver,
		script:   s,
		logger:   b.logger,
	}
}

// Commands returns the commands installing deps (name to constraint) from
// cacheDir. An empty map yields no commands. Candidates for every
// dependency are looked up before anything is emitted, and any failure
// aborts generation entirely.
func (b *Builder) Commands(deps map[string]string, cacheDir string) ([]string, error) {
	if len(deps) == 0 {
		return nil, nil
	}

	lookups, err := b.index.Lookup(deps, cacheDir)
	if err != nil {
		return nil, err
	}

	var cmds []string
	if b.script != nil {
		cmds = append(cmds, b.script.Preamble(), Accumulator)
		for _, l := range lookups {
			cmds = append(cmds, b.script.Select(l.Name, l.Constraint, l.Versions, l.Prefix(cacheDir)))
		}
	} else {
		cmds = append(cmds, Accumulator)
		for _, l := range lookups {
			version, err := b.resolver.Resolve(l.Constraint, l.Versions)
			if err != nil {
				return nil, &resolve.ResolutionError{Dependency: l.Name, Constraint: l.Constraint, Err: err}
			}
			if b.logger != nil {
				b.logger.Debug("Resolved %s (%s) to %s", l.Name, l.Constraint, version)
			}
			cmds = append(cmds, appendArtifact(l.Path(cacheDir, version)))
		}
	}
	cmds = append(cmds, Command)

	if err := shell.Check(cmds); err != nil {
		return nil, fmt.Errorf("generated install commands: %w", err)
	}
	return cmds, nil
}

func appendArtifact(path string) string {
	return fmt.Sprintf(`TARBALLS="$TARBALLS %s"`, shell.EscapeDouble(path))
}
