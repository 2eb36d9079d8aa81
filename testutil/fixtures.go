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
// Package testutil provides testing utilities for localdeps.
package testutil

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/localdeps/internal/mapfs"
)

// updateGolden enables updating golden files with actual output when -update flag is set.
var updateGolden = flag.Bool("update", false, "update golden files with actual output")

// findTestdata returns the first existing candidate for rel under a
// testdata directory. Go test runs in the package directory, so the
// repository's testdata is one or two levels up.
func findTestdata(rel string) (string, bool) {
	for _, dir := range []string{"testdata", filepath.Join("..", "testdata"), filepath.Join("..", "..", "testdata")} {
		path := filepath.Join(dir, rel)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// NewFixtureFS loads a fixture directory from testdata into a
// MapFileSystem rooted at rootPath.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	fixturePath, ok := findTestdata(fixtureDir)
	if !ok {
		t.Fatalf("Could not find fixtures at %s (tried all paths)", fixtureDir)
	}

	mfs := mapfs.New()
	err := filepath.WalkDir(fixturePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(fixturePath, path)
		if err != nil {
			return err
		}
		mfs.AddFile(filepath.Join(rootPath, relPath), string(content), 0644)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to load fixtures from %s: %v", fixtureDir, err)
	}
	return mfs
}

// CopyFixture copies a fixture directory from testdata into a fresh
// temporary directory and returns its path, for tests that need a real
// filesystem.
func CopyFixture(t *testing.T, fixtureDir string) string {
	t.Helper()

	fixturePath, ok := findTestdata(fixtureDir)
	if !ok {
		t.Fatalf("Could not find fixtures at %s (tried all paths)", fixtureDir)
	}
	dest := t.TempDir()
	if err := os.CopyFS(dest, os.DirFS(fixturePath)); err != nil {
		t.Fatalf("Failed to copy fixtures from %s: %v", fixtureDir, err)
	}
	return dest
}

// LoadFixtureFile reads a single fixture file and returns its content.
// The fixturePath should be relative to testdata/.
func LoadFixtureFile(t *testing.T, fixturePath string) []byte {
	t.Helper()

	path, ok := findTestdata(fixturePath)
	if !ok {
		t.Fatalf("Failed to find fixture %s (tried all paths)", fixturePath)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", fixturePath, err)
	}
	return content
}

// LoadGoldenFile reads a golden file (expected output) from testdata.
// If the -update flag is set, returns nil so the caller can write actual output.
func LoadGoldenFile(t *testing.T, goldenPath string) []byte {
	t.Helper()
	if *updateGolden {
		return nil
	}
	return LoadFixtureFile(t, goldenPath)
}

// UpdateGoldenFile writes actual output to the golden file when -update flag is set.
// No-ops when -update is not set. Creates parent directories as needed.
func UpdateGoldenFile(t *testing.T, goldenPath string, actual []byte) {
	t.Helper()
	if !*updateGolden {
		return
	}

	targetPath, ok := findTestdata(filepath.Dir(goldenPath))
	if ok {
		targetPath = filepath.Join(targetPath, filepath.Base(goldenPath))
	} else {
		targetPath = filepath.Join("testdata", goldenPath)
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		t.Fatalf("Failed to create directory for golden file %s: %v", goldenPath, err)
	}
	if err := os.WriteFile(targetPath, actual, 0644); err != nil {
		t.Fatalf("Failed to write golden file %s: %v", goldenPath, err)
	}
	t.Logf("Updated golden file: %s", targetPath)
}
