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
// Package config turns viper settings into configured localdeps components.
//
// Settings come from, in increasing precedence: .localdeps.yaml in the
// package directory (or the file named by --config), LOCALDEPS_*
// environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"bennypowers.dev/localdeps/fs"
	"bennypowers.dev/localdeps/install"
	"bennypowers.dev/localdeps/internal/logging"
	"bennypowers.dev/localdeps/resolve"
)

const (
	// ResolverInProcess selects versions while generating commands.
	ResolverInProcess = "inprocess"
	// ResolverScript defers selection to semver.js on the executor.
	ResolverScript = "script"
)

// Load reads the configuration file, if any, and enables environment
// overrides. A missing default config file is not an error.
func Load() error {
	viper.SetEnvPrefix("LOCALDEPS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName(".localdeps")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(viper.GetString("package"))
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Logger builds the CLI logger from the log-level setting.
func Logger() (*log.Logger, error) {
	return logging.New(os.Stderr, viper.GetString("log-level"))
}

// Builder returns an install.Builder honouring the resolver setting.
func Builder(fsys fs.FileSystem, logger resolve.Logger) (*install.Builder, error) {
	builder := install.New(fsys, logger)
	switch r := viper.GetString("resolver"); r {
	case "", ResolverInProcess:
		return builder, nil
	case ResolverScript:
		script := resolve.NewScript()
		if locations := viper.GetStringSlice("semver-scripts"); len(locations) > 0 {
			script.Locations = locations
		}
		return builder.WithScript(script), nil
	default:
		return nil, fmt.Errorf("invalid resolver %q: must be %q or %q", r, ResolverInProcess, ResolverScript)
	}
}

// PackageDir returns the package directory as an absolute path.
// Generated commands run from the package directory, so every path they
// name must not depend on the directory localdeps was started in.
func PackageDir() (string, error) {
	return absPath("package directory", viper.GetString("package"))
}

// CacheDir returns the configured tarball cache directory as an absolute
// path.
func CacheDir() (string, error) {
	dir := viper.GetString("cache-dir")
	if dir == "" {
		return "", errors.New("no cache directory configured: set --cache-dir or cache-dir in .localdeps.yaml")
	}
	return absPath("cache directory", dir)
}

func absPath(what, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid %s %q: %w", what, path, err)
	}
	return abs, nil
}
