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
// Package packagejson reads and rewrites the package.json fields that
// offline installation cares about, preserving every other field.
package packagejson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"

	lfs "bennypowers.dev/localdeps/fs"
)

// ErrNotFound is returned when the package manifest does not exist.
var ErrNotFound = errors.New("package.json not found")

const (
	keyName                = "name"
	keyVersion             = "version"
	keyDependencies        = "dependencies"
	keyDevDependencies     = "devDependencies"
	keyBundledDependencies = "bundledDependencies"
	// npm accepts both spellings; writes always use keyBundledDependencies.
	keyBundleDependencies = "bundleDependencies"
)

// Manifest is a parsed package.json. Typed fields mirror the raw document;
// unknown top-level fields survive a Parse/Encode round trip untouched.
type Manifest struct {
	Name            string
	Version         string
	Dependencies    map[string]string
	DevDependencies map[string]string

	bundled   []string
	bundleAll bool
	raw       map[string]json.RawMessage
	// keys holds the top-level keys in document order.
	keys []string
}

// Parse parses package.json data.
func Parse(data []byte) (*Manifest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("package.json must contain a JSON object")
	}

	keys, err := topLevelKeys(data)
	if err != nil {
		return nil, err
	}

	m := &Manifest{raw: raw, keys: keys}
	fields := []struct {
		key  string
		into any
	}{
		{keyName, &m.Name},
		{keyVersion, &m.Version},
		{keyDependencies, &m.Dependencies},
		{keyDevDependencies, &m.DevDependencies},
	}
	for _, f := range fields {
		if err := m.decode(f.key, f.into); err != nil {
			return nil, err
		}
	}

	for _, key := range []string{keyBundledDependencies, keyBundleDependencies} {
		value, ok := raw[key]
		if !ok {
			continue
		}
		var all bool
		if err := json.Unmarshal(value, &all); err == nil {
			m.bundleAll = m.bundleAll || all
			continue
		}
		var names []string
		if err := json.Unmarshal(value, &names); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		m.bundled = appendUnique(m.bundled, names...)
	}

	return m, nil
}

// ParseFile parses the package.json at path. A missing file yields an
// error wrapping ErrNotFound.
func ParseFile(fsys lfs.FileSystem, path string) (*Manifest, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

func (m *Manifest) decode(key string, into any) error {
	value, ok := m.raw[key]
	if !ok || string(value) == "null" {
		return nil
	}
	if err := json.Unmarshal(value, into); err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	return nil
}

// HasDependencies reports whether any production or development
// dependency is declared.
func (m *Manifest) HasDependencies() bool {
	return len(m.Dependencies) > 0 || len(m.DevDependencies) > 0
}

// AllDependencies merges production and development dependencies. A name
// declared in both takes its devDependencies constraint.
func (m *Manifest) AllDependencies() map[string]string {
	all := make(map[string]string, len(m.Dependencies)+len(m.DevDependencies))
	maps.Copy(all, m.Dependencies)
	maps.Copy(all, m.DevDependencies)
	return all
}

// Bundled returns the names in bundledDependencies. all reports the
// boolean form, which bundles every production dependency.
func (m *Manifest) Bundled() (names []string, all bool) {
	return slices.Clone(m.bundled), m.bundleAll
}

// Raw returns the undecoded value of a top-level field.
func (m *Manifest) Raw(key string) (json.RawMessage, bool) {
	value, ok := m.raw[key]
	return value, ok
}

// AddBundled unions names into bundledDependencies. Existing entries keep
// their order; new names follow in sorted order. The boolean form already
// covers every dependency and is left alone.
func (m *Manifest) AddBundled(names ...string) error {
	if m.bundleAll {
		return nil
	}
	added := slices.Clone(names)
	slices.Sort(added)
	m.bundled = appendUnique(m.bundled, added...)

	data, err := json.Marshal(m.bundled)
	if err != nil {
		return err
	}
	m.raw[keyBundledDependencies] = data

	// The canonical spelling takes the alias's place when it is new.
	if !slices.Contains(m.keys, keyBundledDependencies) {
		if i := slices.Index(m.keys, keyBundleDependencies); i >= 0 {
			m.keys[i] = keyBundledDependencies
		} else {
			m.keys = append(m.keys, keyBundledDependencies)
		}
	}
	delete(m.raw, keyBundleDependencies)
	m.keys = slices.DeleteFunc(m.keys, func(key string) bool { return key == keyBundleDependencies })
	return nil
}

// Encode serializes the manifest as two-space indented JSON with a
// trailing newline, the way npm writes it. Top-level keys keep their
// original order; keys added since Parse follow.
func (m *Manifest) Encode() ([]byte, error) {
	var compact bytes.Buffer
	enc := json.NewEncoder(&compact)
	enc.SetEscapeHTML(false)

	compact.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			compact.WriteByte(',')
		}
		if err := enc.Encode(key); err != nil {
			return nil, err
		}
		compact.WriteByte(':')
		compact.Write(m.raw[key])
	}
	compact.WriteByte('}')

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// topLevelKeys returns the keys of the JSON object in data in document
// order. A key repeated later in the document keeps its first position.
func topLevelKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		keys = appendUnique(keys, key)
	}
	return keys, nil
}

// SplitPackageName splits a package name into name and scope.
// For "@scope/name" returns ("name", "scope").
// For "name" returns ("name", "").
func SplitPackageName(pkg string) (name, scope string) {
	if strings.HasPrefix(pkg, "@") {
		parts := strings.SplitN(pkg, "/", 2)
		if len(parts) == 2 {
			return parts[1], strings.TrimPrefix(parts[0], "@")
		}
		return pkg, ""
	}
	return pkg, ""
}

func appendUnique(list []string, names ...string) []string {
	for _, name := range names {
		if !slices.Contains(list, name) {
			list = append(list, name)
		}
	}
	return list
}
