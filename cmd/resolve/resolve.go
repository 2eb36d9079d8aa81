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
// Package resolve provides the resolve command for localdeps.
package resolve

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"bennypowers.dev/localdeps/fs"
	"bennypowers.dev/localdeps/internal/config"
	"bennypowers.dev/localdeps/internal/logging"
	"bennypowers.dev/localdeps/internal/output"
	"bennypowers.dev/localdeps/packagejson"
)

// Cmd is the resolve command.
var Cmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print commands installing package.json dependencies from cached tarballs",
	Long: `Resolve every dependency and devDependency of package.json against the
tarball cache and print the commands that install them offline.

Nothing is written; use bundle to also prepare a bundled manifest.`,
	Example: `  localdeps resolve --cache-dir ../cache

  # Defer version selection to semver.js on the build host
  localdeps resolve --cache-dir ../cache --resolver script --format json`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	logger, err := config.Logger()
	if err != nil {
		return err
	}

	cacheDir, err := config.CacheDir()
	if err != nil {
		return err
	}
	builder, err := config.Builder(osfs, logging.Adapt(logger))
	if err != nil {
		return err
	}

	pkgDir, err := config.PackageDir()
	if err != nil {
		return err
	}
	pkg, err := packagejson.ParseFile(osfs, filepath.Join(pkgDir, "package.json"))
	if err != nil {
		return err
	}

	cmds, err := builder.Commands(pkg.AllDependencies(), cacheDir)
	if err != nil {
		return fmt.Errorf("failed to resolve: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	return output.Commands(osfs, cmds, format)
}
