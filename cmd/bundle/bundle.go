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
// Package bundle provides the bundle command for localdeps.
package bundle

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"bennypowers.dev/localdeps/bundle"
	"bennypowers.dev/localdeps/fs"
	"bennypowers.dev/localdeps/internal/config"
	"bennypowers.dev/localdeps/internal/logging"
	"bennypowers.dev/localdeps/internal/output"
)

// Cmd is the bundle command.
var Cmd = &cobra.Command{
	Use:   "bundle",
	Short: "Prepare a package for a self-contained npm pack",
	Long: `Mark production dependencies as bundled, write the bundled manifest to a
snapshot, and print the commands that install every dependency from cached
tarballs and then restore package.json from the snapshot.`,
	Example: `  localdeps bundle --cache-dir ../cache

  # Keep the snapshot somewhere else
  localdeps bundle --cache-dir ../cache --snapshot /tmp/package.bundled.json`,
	RunE: run,
}

func init() {
	Cmd.Flags().String("snapshot", "", "Snapshot path (default: <package>/.parts/package.bundled.json)")
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	logger, err := config.Logger()
	if err != nil {
		return err
	}
	adapter := logging.Adapt(logger)

	cacheDir, err := config.CacheDir()
	if err != nil {
		return err
	}
	builder, err := config.Builder(osfs, adapter)
	if err != nil {
		return err
	}

	pkgDir, err := config.PackageDir()
	if err != nil {
		return err
	}
	snapshot, _ := cmd.Flags().GetString("snapshot")
	if snapshot == "" {
		snapshot = filepath.Join(pkgDir, bundle.DefaultSnapshotPath)
	}
	// The restore command copies the snapshot from inside the package directory.
	if snapshot, err = filepath.Abs(snapshot); err != nil {
		return fmt.Errorf("invalid snapshot path: %w", err)
	}

	rewriter := bundle.New(osfs, builder, adapter)
	cmds, err := rewriter.Prepare(filepath.Join(pkgDir, "package.json"), snapshot, cacheDir)
	if err != nil {
		return fmt.Errorf("failed to bundle: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	return output.Commands(osfs, cmds, format)
}
