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
// Command localdeps prepares part sources for offline builds: it disables
// local go.mod replacements and installs npm dependencies from cached
// tarballs.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/localdeps/cmd/bundle"
	"bennypowers.dev/localdeps/cmd/part"
	"bennypowers.dev/localdeps/cmd/resolve"
	"bennypowers.dev/localdeps/cmd/sanitize"
	"bennypowers.dev/localdeps/cmd/version"
	"bennypowers.dev/localdeps/internal/config"
	"bennypowers.dev/localdeps/internal/logging"
	"bennypowers.dev/localdeps/plugin"
)

var (
	cpuprofile     string
	cpuprofileFile *os.File
	rootCmd        = &cobra.Command{
		Use:   "localdeps",
		Short: "Localize part dependencies for offline builds",
		Long: `localdeps generates the shell commands a build step runs to use
dependencies without network access: go.mod replace directives pointing at
sibling directories are disabled, and package.json dependencies are
installed from a cache of pre-packed tarballs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			if cpuprofile != "" {
				f, err := os.Create(cpuprofile)
				if err != nil {
					return fmt.Errorf("could not create CPU profile: %w", err)
				}
				cpuprofileFile = f
				if err := pprof.StartCPUProfile(f); err != nil {
					closeErr := f.Close()
					return errors.Join(
						fmt.Errorf("could not start CPU profile: %w", err),
						closeErr,
					)
				}
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cpuprofileFile != nil {
				pprof.StopCPUProfile()
				if err := cpuprofileFile.Close(); err != nil {
					return fmt.Errorf("closing CPU profile: %w", err)
				}
			}
			return nil
		},
	}
)

func init() {
	// Root flags (persistent across all commands)
	flags := rootCmd.PersistentFlags()
	flags.StringP("package", "p", ".", "Package directory")
	flags.StringP("output", "o", "", "Output file (default: stdout)")
	flags.String("config", "", "Config file (default: <package>/.localdeps.yaml)")
	flags.String("cache-dir", "", "Directory of cached <name>-<version>.tgz tarballs")
	flags.String("resolver", config.ResolverInProcess, "Version resolver (inprocess, script)")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&cpuprofile, "cpuprofile", "", "Write CPU profile to file")

	for _, name := range []string{"package", "output", "config", "cache-dir", "resolver", "log-level"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	// Add commands
	rootCmd.AddCommand(sanitize.Cmd)
	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(bundle.Cmd)
	rootCmd.AddCommand(part.GoUseCmd)
	rootCmd.AddCommand(part.NpmUseCmd)
	rootCmd.AddCommand(version.Cmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		report(err)
		os.Exit(1)
	}
}

// report prints err once. Errors with a resolution go through the logger
// so the hint is shown alongside the brief message.
func report(err error) {
	var partsErr *plugin.PartsError
	if !errors.As(err, &partsErr) || partsErr.Resolution == "" {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	logger, logErr := config.Logger()
	if logErr != nil {
		logger, _ = logging.New(os.Stderr, "")
	}
	keyvals := []any{"resolution", partsErr.Resolution}
	if partsErr.Details != "" {
		keyvals = append([]any{"details", partsErr.Details}, keyvals...)
	}
	logger.Error(partsErr.Brief, keyvals...)
}
