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
// Package plugin provides the build-step plugins that localize a part's
// dependencies before an offline build.
package plugin

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Plugin produces the build-step commands for one part.
type Plugin interface {
	// BuildCommands returns the commands to run, in order, in the part's
	// build directory.
	BuildCommands() ([]string, error)
	// OutOfSourceBuild reports whether the build runs outside the source tree.
	OutOfSourceBuild() bool
}

// PartInfo locates one part's directories.
type PartInfo struct {
	PartName string
	// SrcSubdir is the source directory, including any source-subdir.
	SrcSubdir string
	BuildDir  string
	// BuildSubdir is the build directory, including any source-subdir.
	BuildSubdir string
	ExportDir   string
	// CacheDir holds the tarballs packed by the parts this one depends on.
	CacheDir string
	// SelfContained parts must build without network access.
	SelfContained bool
}

// PartsError is a failure the user can fix, with a hint on how.
type PartsError struct {
	Brief      string
	Details    string
	Resolution string
	Err        error
}

func (e *PartsError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Brief)
	if e.Details != "" {
		msg.WriteString(" ")
		msg.WriteString(e.Details)
	}
	if e.Err != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Err.Error())
	}
	return msg.String()
}

func (e *PartsError) Unwrap() error {
	return e.Err
}

// MissingManifestError reports that dir has no manifest file, such as
// go.mod or package.json.
func MissingManifestError(manifest, dir string, err error) *PartsError {
	return &PartsError{
		Brief:      fmt.Sprintf("%s not found in '%s'.", manifest, dir),
		Resolution: fmt.Sprintf("Make sure the source directory contains a %s file.", manifest),
		Err:        err,
	}
}

func exportPath(info PartInfo, elem ...string) string {
	return filepath.Join(append([]string{info.ExportDir}, elem...)...)
}
