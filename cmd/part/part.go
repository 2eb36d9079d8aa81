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
// Package part provides the go-use and npm-use commands for localdeps,
// which print the build-step commands of one part.
package part

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"bennypowers.dev/localdeps/bundle"
	"bennypowers.dev/localdeps/fs"
	"bennypowers.dev/localdeps/internal/config"
	"bennypowers.dev/localdeps/internal/logging"
	"bennypowers.dev/localdeps/internal/output"
	"bennypowers.dev/localdeps/plugin"
)

// GoUseCmd is the go-use command.
var GoUseCmd = &cobra.Command{
	Use:   "go-use",
	Short: "Print build commands exposing a Go module to dependent parts",
	Long: `Disable local replace directives in the part's go.mod and link the source
into <export-dir>/go-use/<part>.`,
	Example: `  localdeps go-use --part my-lib --export-dir ../export

  # Rewrite go.mod now instead of when the commands run
  localdeps go-use --part my-lib --export-dir ../export --sanitize inline`,
	RunE: runGoUse,
}

// NpmUseCmd is the npm-use command.
var NpmUseCmd = &cobra.Command{
	Use:   "npm-use",
	Short: "Print build commands packing an npm package for dependent parts",
	Long: `Pack the part into <export-dir>/npm-cache. With --self-contained, first
install its dependencies offline from --cache-dir and bundle them.`,
	Example: `  localdeps npm-use --part my-pkg --export-dir ../export

  localdeps npm-use --part my-pkg --export-dir ../export --self-contained --cache-dir ../cache`,
	RunE: runNpmUse,
}

func init() {
	for _, cmd := range []*cobra.Command{GoUseCmd, NpmUseCmd} {
		cmd.Flags().String("part", "", "Part name (default: base name of the package directory)")
		cmd.Flags().String("export-dir", "", "Part export directory (required)")
		cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	}
	GoUseCmd.Flags().String("sanitize", string(plugin.SanitizeDeferred), "Where go.mod is rewritten (deferred, inline)")
	NpmUseCmd.Flags().Bool("self-contained", false, "Install dependencies from the tarball cache before packing")
	NpmUseCmd.Flags().String("build-subdir", "", "Build subdirectory holding the snapshot (default: package directory)")
}

func partInfo(cmd *cobra.Command) (plugin.PartInfo, error) {
	pkgDir, err := config.PackageDir()
	if err != nil {
		return plugin.PartInfo{}, err
	}
	exportDir, _ := cmd.Flags().GetString("export-dir")
	if exportDir == "" {
		return plugin.PartInfo{}, errors.New("--export-dir is required")
	}
	exportDir, err = filepath.Abs(exportDir)
	if err != nil {
		return plugin.PartInfo{}, fmt.Errorf("invalid export directory: %w", err)
	}
	name, _ := cmd.Flags().GetString("part")
	if name == "" {
		name = filepath.Base(pkgDir)
	}
	return plugin.PartInfo{
		PartName:    name,
		SrcSubdir:   pkgDir,
		BuildDir:    pkgDir,
		BuildSubdir: pkgDir,
		ExportDir:   exportDir,
	}, nil
}

func runGoUse(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	logger, err := config.Logger()
	if err != nil {
		return err
	}
	info, err := partInfo(cmd)
	if err != nil {
		return err
	}
	modeName, _ := cmd.Flags().GetString("sanitize")
	mode, err := plugin.ParseSanitizeMode(modeName)
	if err != nil {
		return err
	}

	p := plugin.NewGoUse(osfs, info, logging.Adapt(logger)).WithSanitizeMode(mode)
	return emit(cmd, osfs, p)
}

func runNpmUse(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	logger, err := config.Logger()
	if err != nil {
		return err
	}
	adapter := logging.Adapt(logger)
	info, err := partInfo(cmd)
	if err != nil {
		return err
	}
	info.SelfContained, _ = cmd.Flags().GetBool("self-contained")
	if subdir, _ := cmd.Flags().GetString("build-subdir"); subdir != "" {
		if info.BuildSubdir, err = filepath.Abs(subdir); err != nil {
			return fmt.Errorf("invalid build subdirectory: %w", err)
		}
	}
	if info.SelfContained {
		if info.CacheDir, err = config.CacheDir(); err != nil {
			return err
		}
	}

	builder, err := config.Builder(osfs, adapter)
	if err != nil {
		return err
	}
	p := plugin.NewNpmUse(osfs, info, bundle.New(osfs, builder, adapter))
	return emit(cmd, osfs, p)
}

func emit(cmd *cobra.Command, osfs fs.FileSystem, p plugin.Plugin) error {
	cmds, err := p.BuildCommands()
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	return output.Commands(osfs, cmds, format)
}
