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
// Package mapfs provides an in-memory filesystem implementation for testing.
package mapfs

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

// MapFileSystem implements fs.FileSystem on top of fstest.MapFS.
// It records every mutation so tests can assert that an operation which
// should have been side-effect free wrote nothing.
type MapFileSystem struct {
	mu        sync.RWMutex
	mapFS     fstest.MapFS
	modTime   time.Time
	mutations []string
}

// New creates a new in-memory filesystem for testing.
func New() *MapFileSystem {
	return &MapFileSystem{
		mapFS:   make(fstest.MapFS),
		modTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// AddFile adds a file without recording a mutation.
func (mfs *MapFileSystem) AddFile(path string, content string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.mapFS[mfs.cleanPath(path)] = &fstest.MapFile{
		Data:    []byte(content),
		Mode:    mode,
		ModTime: mfs.modTime,
	}
}

// Touch adds empty files named names inside dir, the way a populated
// tarball cache looks to a reader that only inspects filenames.
func (mfs *MapFileSystem) Touch(dir string, names ...string) {
	for _, name := range names {
		mfs.AddFile(path.Join(dir, name), "", 0644)
	}
}

// AddDir adds an empty directory without recording a mutation.
func (mfs *MapFileSystem) AddDir(path string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.mapFS[mfs.cleanPath(path)] = &fstest.MapFile{
		Mode:    fs.ModeDir | mode.Perm(),
		ModTime: mfs.modTime,
	}
}

// WriteFile implements fs.FileSystem.
func (mfs *MapFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = mfs.cleanPath(name)
	if err := mfs.ensureParentDirLocked(name); err != nil {
		return err
	}

	mfs.mapFS[name] = &fstest.MapFile{
		Data:    append([]byte(nil), data...),
		Mode:    perm,
		ModTime: mfs.modTime,
	}
	mfs.mutations = append(mfs.mutations, "write "+name)
	return nil
}

// ReadFile implements fs.FileSystem.
func (mfs *MapFileSystem) ReadFile(name string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return fs.ReadFile(mfs.mapFS, mfs.cleanPath(name))
}

// MkdirAll implements fs.FileSystem.
func (mfs *MapFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	path = mfs.cleanPath(path)
	if file, exists := mfs.mapFS[path]; exists {
		if !file.Mode.IsDir() {
			return &fs.PathError{Op: "mkdir", Path: path, Err: fmt.Errorf("not a directory")}
		}
		return nil
	}

	mfs.mapFS[path] = &fstest.MapFile{
		Mode:    fs.ModeDir | perm.Perm(),
		ModTime: mfs.modTime,
	}
	mfs.mutations = append(mfs.mutations, "mkdir "+path)
	return nil
}

// Stat implements fs.FileSystem.
func (mfs *MapFileSystem) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return fs.Stat(mfs.mapFS, mfs.cleanPath(name))
}

// Exists implements fs.FileSystem.
func (mfs *MapFileSystem) Exists(path string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	path = mfs.cleanPath(path)
	if _, exists := mfs.mapFS[path]; exists {
		return true
	}

	prefix := path + "/"
	for filePath := range mfs.mapFS {
		if strings.HasPrefix(filePath, prefix) {
			return true
		}
	}
	return false
}

// ReadDir implements fs.FileSystem.
func (mfs *MapFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return fs.ReadDir(mfs.mapFS, mfs.cleanPath(name))
}

// Mutations returns the writes and directory creations performed through
// the FileSystem interface, in order.
func (mfs *MapFileSystem) Mutations() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return slices.Clone(mfs.mutations)
}

// ListFiles returns all regular files and their sizes, for debugging.
func (mfs *MapFileSystem) ListFiles() map[string]string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	result := make(map[string]string)
	for p, file := range mfs.mapFS {
		if file.Mode.IsDir() {
			result["/"+p] = "directory"
		} else {
			result["/"+p] = fmt.Sprintf("file (%d bytes)", len(file.Data))
		}
	}
	return result
}

func (mfs *MapFileSystem) cleanPath(p string) string {
	cleaned := path.Clean(p)
	if !path.IsAbs(cleaned) {
		cleaned = "/" + cleaned
	}
	return strings.TrimPrefix(cleaned, "/")
}

func (mfs *MapFileSystem) ensureParentDirLocked(filePath string) error {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" || dir == "" {
		return nil
	}

	if file, exists := mfs.mapFS[dir]; exists && !file.Mode.IsDir() {
		return &fs.PathError{Op: "open", Path: filePath, Err: fmt.Errorf("not a directory")}
	}
	return nil
}
