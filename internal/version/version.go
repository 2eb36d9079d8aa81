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
// Package version provides version information for the localdeps CLI.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

var (
	// Version information, set at build time via ldflags
	Version   = "dev"     // Version string (e.g., "v0.1.0")
	GitCommit = "unknown" // Git commit hash
	GitTag    = "unknown" // Git tag
	BuildTime = "unknown" // Build timestamp
	GitDirty  = ""        // "dirty" if working directory has uncommitted changes
)

// GetVersion returns the version string for the application, preferring
// ldflags, then module build info, then git metadata.
func GetVersion() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "(devel)" && v != "" {
			return v
		}
	}

	if GitTag == "unknown" || GitCommit == "unknown" {
		return "dev"
	}
	version := GitTag
	if short := shortCommit(GitCommit); short != "" && !strings.HasSuffix(GitTag, short) {
		version = fmt.Sprintf("%s-%s", GitTag, short)
	}
	if GitDirty == "dirty" {
		version += "-dirty"
	}
	return version
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

// GetFullVersion returns the version with the commit it was built from.
func GetFullVersion() string {
	version := GetVersion()
	if GitCommit != "unknown" {
		return fmt.Sprintf("%s (commit: %s)", version, GitCommit)
	}
	return version
}

// GetBuildInfo returns detailed build information
func GetBuildInfo() map[string]string {
	return map[string]string{
		"version":   GetVersion(),
		"gitCommit": GitCommit,
		"gitTag":    GitTag,
		"buildTime": BuildTime,
		"gitDirty":  GitDirty,
	}
}
