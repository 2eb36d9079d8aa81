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
// Package bundle prepares a package for a self-contained pack: production
// dependencies are marked as bundled, installed from cached tarballs, and
// the manifest is restored afterwards.
//
// npm install rewrites every dependency installed from a tarball to a
// file: reference, and a package packed in that state is unusable by
// anyone else. The Rewriter therefore snapshots the manifest it wants to
// ship before installation and copies it back once installation is done.
package bundle

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"bennypowers.dev/localdeps/fs"
	"bennypowers.dev/localdeps/install"
	"bennypowers.dev/localdeps/internal/shell"
	"bennypowers.dev/localdeps/packagejson"
	"bennypowers.dev/localdeps/resolve"
)

// DefaultSnapshotPath is where a part keeps its bundled manifest,
// relative to the part's build directory.
var DefaultSnapshotPath = filepath.Join(".parts", "package.bundled.json")

// Snapshot is the manifest state to restore after installation.
type Snapshot struct {
	// Path is where the desired manifest was written.
	Path string
	// Target is the manifest installation corrupts, relative to the
	// executor's working directory.
	Target string
}

// RestoreCommand copies the snapshot back over the working manifest.
func (s *Snapshot) RestoreCommand() string {
	return "cp " + shell.Quote(s.Path) + " " + shell.Quote(s.Target)
}

// Plan is the install commands together with the snapshot that undoes
// their side effect on the manifest.
type Plan struct {
	Install  []string
	Snapshot *Snapshot
}

// Commands returns the install commands followed by the restore command.
// Restoration always comes last regardless of how Install was assembled.
func (p *Plan) Commands() []string {
	if p == nil || len(p.Install) == 0 {
		return nil
	}
	cmds := slices.Clone(p.Install)
	if p.Snapshot != nil {
		cmds = append(cmds, p.Snapshot.RestoreCommand())
	}
	return cmds
}

// Rewriter rewrites package manifests for bundled installation.
type Rewriter struct {
	fs      fs.FileSystem
	builder *install.Builder
	logger  resolve.Logger
}

// New creates a Rewriter. logger may be nil.
func New(fsys fs.FileSystem, builder *install.Builder, logger resolve.Logger) *Rewriter {
	return &Rewriter{fs: fsys, builder: builder, logger: logger}
}

// Prepare returns the commands installing the dependencies of the manifest
// at manifestPath from cacheDir, ending with the command that restores the
// bundled manifest written to snapshotPath. A manifest without
// dependencies yields no commands and no writes.
func (r *Rewriter) Prepare(manifestPath, snapshotPath, cacheDir string) ([]string, error) {
	plan, err := r.Plan(manifestPath, snapshotPath, cacheDir)
	if err != nil {
		return nil, err
	}
	return plan.Commands(), nil
}

// Plan is Prepare without flattening the result.
func (r *Rewriter) Plan(manifestPath, snapshotPath, cacheDir string) (*Plan, error) {
	pkg, err := packagejson.ParseFile(r.fs, manifestPath)
	if err != nil {
		return nil, err
	}
	if !pkg.HasDependencies() {
		if r.logger != nil {
			r.logger.Debug("No dependencies declared in %s", manifestPath)
		}
		return &Plan{}, nil
	}

	// Resolve before writing anything so a failure leaves no snapshot behind.
	cmds, err := r.builder.Commands(pkg.AllDependencies(), cacheDir)
	if err != nil {
		return nil, err
	}

	if len(pkg.Dependencies) > 0 {
		if err := pkg.AddBundled(slices.Collect(maps.Keys(pkg.Dependencies))...); err != nil {
			return nil, fmt.Errorf("updating bundledDependencies: %w", err)
		}
	}
	data, err := pkg.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", snapshotPath, err)
	}
	if err := r.fs.MkdirAll(filepath.Dir(snapshotPath), 0755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := r.fs.WriteFile(snapshotPath, data, 0644); err != nil {
		return nil, fmt.Errorf("writing snapshot %s: %w", snapshotPath, err)
	}

	return &Plan{
		Install: cmds,
		Snapshot: &Snapshot{
			Path:   snapshotPath,
			Target: filepath.Base(manifestPath),
		},
	}, nil
}
