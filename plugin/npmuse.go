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
package plugin

import (
	"errors"
	"fmt"
	"path/filepath"

	"bennypowers.dev/localdeps/bundle"
	"bennypowers.dev/localdeps/fs"
	"bennypowers.dev/localdeps/internal/shell"
	"bennypowers.dev/localdeps/packagejson"
)

// NpmUse packs an npm package into <export>/npm-cache so later parts can
// install it offline. Self-contained parts first install their own
// dependencies from the shared cache and bundle them.
type NpmUse struct {
	info     PartInfo
	fs       fs.FileSystem
	rewriter *bundle.Rewriter
}

// NewNpmUse creates an npm-use plugin.
func NewNpmUse(fsys fs.FileSystem, info PartInfo, rewriter *bundle.Rewriter) *NpmUse {
	return &NpmUse{info: info, fs: fsys, rewriter: rewriter}
}

// OutOfSourceBuild implements Plugin.
func (p *NpmUse) OutOfSourceBuild() bool {
	return false
}

// CacheExport is the npm pack destination.
func (p *NpmUse) CacheExport() string {
	return exportPath(p.info, "npm-cache")
}

// BuildCommands implements Plugin.
func (p *NpmUse) BuildCommands() ([]string, error) {
	if err := p.fs.MkdirAll(p.CacheExport(), 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", p.CacheExport(), err)
	}

	var cmds []string
	if p.info.SelfContained {
		manifestPath := filepath.Join(p.info.BuildDir, "package.json")
		snapshotPath := filepath.Join(p.info.BuildSubdir, bundle.DefaultSnapshotPath)
		install, err := p.rewriter.Prepare(manifestPath, snapshotPath, p.info.CacheDir)
		if err != nil {
			if errors.Is(err, packagejson.ErrNotFound) {
				return nil, MissingManifestError("package.json", p.info.BuildDir, err)
			}
			return nil, err
		}
		cmds = append(cmds, install...)
	}

	cmds = append(cmds, fmt.Sprintf(`mv "$(npm pack . | tail -1)" %s`, shell.Quote(p.CacheExport()+"/")))
	if err := shell.Check(cmds); err != nil {
		return nil, fmt.Errorf("generated npm-use commands: %w", err)
	}
	return cmds, nil
}
