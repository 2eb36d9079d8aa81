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
package modfile

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"unicode"

	lfs "bennypowers.dev/localdeps/fs"
	"bennypowers.dev/localdeps/internal/shell"
)

const (
	// DefaultKeyword is the directive whose local targets are disabled.
	DefaultKeyword = "replace"

	// CommentPrefix disables a directive line.
	CommentPrefix = "// "
)

// ErrNotFound is returned when the module manifest does not exist.
var ErrNotFound = errors.New("go.mod not found")

type state int

const (
	outside state = iota
	insideBlock
)

// Sanitizer comments out local directives of one keyword.
type Sanitizer struct {
	Keyword string
}

// New returns a Sanitizer for replace directives.
func New() *Sanitizer {
	return &Sanitizer{Keyword: DefaultKeyword}
}

// Sanitize returns text with every local directive commented out. The
// output has the same lines in the same order; changed lines only gain the
// comment prefix and lose their indentation. Lines that are already
// comments are never touched, so Sanitize is idempotent.
func (s *Sanitizer) Sanitize(text string) string {
	lines := strings.Split(text, "\n")
	st := outside
	for i, line := range lines {
		lines[i], st = s.step(st, line)
	}
	return strings.Join(lines, "\n")
}

func (s *Sanitizer) step(st state, line string) (string, state) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if strings.HasPrefix(trimmed, "//") {
		return line, st
	}

	switch st {
	case insideBlock:
		if strings.TrimSpace(line) == ")" {
			return line, outside
		}
		if IsLocal(trimmed) {
			return CommentPrefix + trimmed, st
		}
		return line, st
	default:
		rest, ok := strings.CutPrefix(trimmed, s.Keyword)
		if !ok {
			return line, st
		}
		if strings.HasPrefix(strings.TrimLeftFunc(rest, unicode.IsSpace), "(") {
			return line, insideBlock
		}
		if startsWithSpace(rest) && strings.Contains(rest, "=>") && IsLocal(rest) {
			return CommentPrefix + trimmed, st
		}
		return line, st
	}
}

func startsWithSpace(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return false
}

// SanitizeFile rewrites the manifest at path in place and reports whether
// it changed. The file is only written when its content changes.
func (s *Sanitizer) SanitizeFile(fsys lfs.FileSystem, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return false, err
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return false, err
	}

	sanitized := s.Sanitize(string(data))
	if sanitized == string(data) {
		return false, nil
	}
	if err := fsys.WriteFile(path, []byte(sanitized), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// awkProgram is the line-processing equivalent of Sanitize, for when the
// rewrite has to happen on the executor.
const awkProgram = `# Returns 1 if directive points to a local path (./ or ../).
function is_local(directive) {
    return directive ~ /^[[:space:]]*[^[:space:]]+([ \t]+[^[:space:]]+)?[ \t]+=>[ \t]+\.\.?\//
}

BEGIN { inside = 0 }

{ stripped = $0; sub(/^[[:space:]]+/, "", stripped) }

# Already disabled
stripped ~ /^\/\// { print; next }

!inside && stripped ~ /^@KEYWORD@[[:space:]]*\(/ { inside = 1; print; next }

inside && /^[[:space:]]*\)[[:space:]]*$/ { inside = 0; print; next }

inside {
    if (is_local(stripped)) { print "// " stripped } else { print }
    next
}

stripped ~ /^@KEYWORD@[[:space:]]/ && /=>/ {
    if (is_local(substr(stripped, @SKIP@))) { print "// " stripped; next }
}

{ print }`

// AwkCommand returns a command that sanitizes path in place with awk.
func (s *Sanitizer) AwkCommand(path string) string {
	program := strings.NewReplacer(
		"@KEYWORD@", s.Keyword,
		"@SKIP@", strconv.Itoa(len(s.Keyword)+1),
	).Replace(awkProgram)
	tmp := path + ".tmp"
	return fmt.Sprintf("awk %s %s > %s && mv %s %s",
		shell.Quote(program), shell.Quote(path), shell.Quote(tmp), shell.Quote(tmp), shell.Quote(path))
}
