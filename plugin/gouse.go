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
	"fmt"
	"path/filepath"

	"bennypowers.dev/localdeps/fs"
	"bennypowers.dev/localdeps/internal/shell"
	"bennypowers.dev/localdeps/modfile"
	"bennypowers.dev/localdeps/resolve"
)

// SanitizeMode selects where go.mod is rewritten.
type SanitizeMode string

const (
	// SanitizeDeferred emits an awk pipeline that rewrites go.mod when the
	// commands run.
	SanitizeDeferred SanitizeMode = "deferred"
	// SanitizeInline rewrites go.mod while the commands are generated.
	SanitizeInline SanitizeMode = "inline"
)

// ParseSanitizeMode validates a mode name.
func ParseSanitizeMode(s string) (SanitizeMode, error) {
	switch m := SanitizeMode(s); m {
	case SanitizeDeferred, SanitizeInline:
		return m, nil
	case "":
		return SanitizeDeferred, nil
	}
	return "", fmt.Errorf("invalid sanitize mode %q: must be 'deferred' or 'inline'", s)
}

// GoUse exposes a Go module to the parts that depend on it through a
// symlink under <export>/go-use, with its local replace directives
// disabled.
type GoUse struct {
	info      PartInfo
	fs        fs.FileSystem
	sanitizer *modfile.Sanitizer
	mode      SanitizeMode
	logger    resolve.Logger
}

// NewGoUse creates a go-use plugin. logger may be nil.
func NewGoUse(fsys fs.FileSystem, info PartInfo, logger resolve.Logger) *GoUse {
	return &GoUse{
		info:      info,
		fs:        fsys,
		sanitizer: modfile.New(),
		mode:      SanitizeDeferred,
		logger:    logger,
	}
}

// WithSanitizeMode returns a new GoUse that rewrites go.mod in mode.
func (p *GoUse) WithSanitizeMode(mode SanitizeMode) *GoUse {
	return &GoUse{
		info:      p.info,
		fs:        p.fs,
		sanitizer: p.sanitizer,
		mode:      mode,
		logger:    p.logger,
	}
}

// OutOfSourceBuild implements Plugin.
func (p *GoUse) OutOfSourceBuild() bool {
	return true
}

// ExportPath is where the module is linked for dependent parts.
func (p *GoUse) ExportPath() string {
	return exportPath(p.info, "go-use", p.info.PartName)
}

// BuildCommands implements Plugin.
func (p *GoUse) BuildCommands() ([]string, error) {
	modPath := filepath.Join(p.info.SrcSubdir, "go.mod")
	if !p.fs.Exists(modPath) {
		return nil, MissingManifestError("go.mod", p.info.SrcSubdir, nil)
	}

	var cmds []string
	switch p.mode {
	case SanitizeInline:
		changed, err := p.sanitizer.SanitizeFile(p.fs, modPath)
		if err != nil {
			return nil, fmt.Errorf("sanitizing %s: %w", modPath, err)
		}
		if changed && p.logger != nil {
			p.logger.Debug("Disabled local replace directives in %s", modPath)
		}
	case SanitizeDeferred:
		cmds = append(cmds, p.sanitizer.AwkCommand(modPath))
	default:
		return nil, fmt.Errorf("invalid sanitize mode %q", p.mode)
	}

	dest := p.ExportPath()
	cmds = append(cmds,
		"mkdir -p "+shell.Quote(filepath.Dir(dest)),
		"ln -sf "+shell.Quote(p.info.SrcSubdir)+" "+shell.Quote(dest),
	)
	if err := shell.Check(cmds); err != nil {
		return nil, fmt.Errorf("generated go-use commands: %w", err)
	}
	return cmds, nil
}
