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
// Package sanitize provides the sanitize command for localdeps.
package sanitize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bennypowers.dev/localdeps/fs"
	"bennypowers.dev/localdeps/internal/config"
	"bennypowers.dev/localdeps/internal/output"
	"bennypowers.dev/localdeps/modfile"
	"bennypowers.dev/localdeps/plugin"
)

// Cmd is the sanitize command.
var Cmd = &cobra.Command{
	Use:   "sanitize [go.mod]",
	Short: "Disable local replace directives in a go.mod",
	Long: `Comment out go.mod replace directives whose target is a relative path
(./ or ../), leaving registry replacements untouched.

By default the sanitized manifest is printed; use --write to rewrite it in place.`,
	Example: `  # Print the sanitized go.mod of the current package
  localdeps sanitize

  # Rewrite a go.mod in place
  localdeps sanitize --write path/to/go.mod

  # Print the equivalent awk command for an executor
  localdeps sanitize --awk`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().BoolP("write", "w", false, "Rewrite the file in place")
	Cmd.Flags().Bool("awk", false, "Print an awk command that performs the rewrite")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()

	pkgDir, err := config.PackageDir()
	if err != nil {
		return err
	}
	path := filepath.Join(pkgDir, "go.mod")
	if len(args) == 1 {
		// The awk command may run from another directory.
		if path, err = filepath.Abs(args[0]); err != nil {
			return fmt.Errorf("invalid go.mod path: %w", err)
		}
	}

	write, _ := cmd.Flags().GetBool("write")
	awk, _ := cmd.Flags().GetBool("awk")
	if write && awk {
		return errors.New("--write and --awk are mutually exclusive")
	}

	sanitizer := modfile.New()
	if awk {
		return output.Text(osfs, sanitizer.AwkCommand(path))
	}
	if write {
		changed, err := sanitizer.SanitizeFile(osfs, path)
		if errors.Is(err, modfile.ErrNotFound) {
			return plugin.MissingManifestError("go.mod", filepath.Dir(path), err)
		}
		if err != nil {
			return err
		}
		if changed {
			fmt.Fprintf(cmd.ErrOrStderr(), "sanitized %s\n", path)
		}
		return nil
	}

	data, err := osfs.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return plugin.MissingManifestError("go.mod", filepath.Dir(path), err)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), sanitizer.Sanitize(string(data)))
	return err
}
