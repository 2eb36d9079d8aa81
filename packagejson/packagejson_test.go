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
package packagejson_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bennypowers.dev/localdeps/internal/mapfs"
	"bennypowers.dev/localdeps/packagejson"
	"bennypowers.dev/localdeps/testutil"
)

func TestParseFile(t *testing.T) {
	tests := []struct {
		name    string
		dir     string
		deps    map[string]string
		devDeps map[string]string
	}{
		{"production and dev", "simple", map[string]string{"my-dep": "^1.0.0"}, map[string]string{"dev-dep": "~2.0.0"}},
		{"dev only", "dev-only", nil, map[string]string{"dev-dep": "~2.0.0"}},
		{"no dependencies", "no-deps", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := testutil.NewFixtureFS(t, "npm/"+tt.dir, "/test")

			pkg, err := packagejson.ParseFile(mfs, "/test/package.json")
			if err != nil {
				t.Fatalf("ParseFile failed: %v", err)
			}
			if pkg.Name == "" {
				t.Error("Expected package name to be parsed")
			}
			if diff := cmp.Diff(tt.deps, pkg.Dependencies); diff != "" {
				t.Errorf("dependencies mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.devDeps, pkg.DevDependencies); diff != "" {
				t.Errorf("devDependencies mismatch (-want +got):\n%s", diff)
			}
			if got, want := pkg.HasDependencies(), tt.deps != nil || tt.devDeps != nil; got != want {
				t.Errorf("HasDependencies() = %v, want %v", got, want)
			}
		})
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := packagejson.ParseFile(mapfs.New(), "/test/package.json")
	if !errors.Is(err, packagejson.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{`},
		{"null document", `null`},
		{"array document", `[]`},
		{"dependencies not an object", `{"dependencies": ["a"]}`},
		{"bundled dependencies of wrong type", `{"bundledDependencies": "a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := packagejson.Parse([]byte(tt.input)); err == nil {
				t.Errorf("expected error parsing %s", tt.input)
			}
		})
	}
}

func TestBundled(t *testing.T) {
	tests := []struct {
		name  string
		input string
		names []string
		all   bool
	}{
		{"absent", `{}`, nil, false},
		{"list", `{"bundledDependencies": ["a", "b"]}`, []string{"a", "b"}, false},
		{"alias spelling", `{"bundleDependencies": ["a"]}`, []string{"a"}, false},
		{"both spellings union", `{"bundledDependencies": ["a"], "bundleDependencies": ["a", "b"]}`, []string{"a", "b"}, false},
		{"boolean true", `{"bundledDependencies": true}`, nil, true},
		{"boolean false", `{"bundledDependencies": false}`, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := packagejson.Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			names, all := pkg.Bundled()
			if diff := cmp.Diff(tt.names, names); diff != "" {
				t.Errorf("names mismatch (-want +got):\n%s", diff)
			}
			if all != tt.all {
				t.Errorf("all = %v, want %v", all, tt.all)
			}
		})
	}
}

func TestAllDependencies(t *testing.T) {
	pkg, err := packagejson.Parse([]byte(`{
		"dependencies": {"a": "^1.0.0", "shared": "^1.0.0"},
		"devDependencies": {"b": "^2.0.0", "shared": "^2.0.0"}
	}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	expected := map[string]string{"a": "^1.0.0", "b": "^2.0.0", "shared": "^2.0.0"}
	if diff := cmp.Diff(expected, pkg.AllDependencies()); diff != "" {
		t.Errorf("AllDependencies mismatch (-want +got):\n%s", diff)
	}
}

func TestAddBundled(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		add      []string
		expected string
	}{
		{
			name:     "creates key after existing keys",
			input:    `{"name":"p"}`,
			add:      []string{"z", "a"},
			expected: "{\n  \"name\": \"p\",\n  \"bundledDependencies\": [\n    \"a\",\n    \"z\"\n  ]\n}\n",
		},
		{
			name:     "keeps existing order and skips duplicates",
			input:    `{"bundledDependencies":["x","a"]}`,
			add:      []string{"a", "y"},
			expected: "{\n  \"bundledDependencies\": [\n    \"x\",\n    \"a\",\n    \"y\"\n  ]\n}\n",
		},
		{
			name:     "folds alias spelling",
			input:    `{"bundleDependencies":["x"]}`,
			add:      []string{"y"},
			expected: "{\n  \"bundledDependencies\": [\n    \"x\",\n    \"y\"\n  ]\n}\n",
		},
		{
			name:     "alias position kept",
			input:    `{"name":"p","bundleDependencies":["x"],"version":"1.0.0"}`,
			add:      []string{"y"},
			expected: "{\n  \"name\": \"p\",\n  \"bundledDependencies\": [\n    \"x\",\n    \"y\"\n  ],\n  \"version\": \"1.0.0\"\n}\n",
		},
		{
			name:     "existing key position kept",
			input:    `{"bundledDependencies":["x"],"name":"p"}`,
			add:      []string{"y"},
			expected: "{\n  \"bundledDependencies\": [\n    \"x\",\n    \"y\"\n  ],\n  \"name\": \"p\"\n}\n",
		},
		{
			name:     "boolean form untouched",
			input:    `{"bundledDependencies":true}`,
			add:      []string{"y"},
			expected: "{\n  \"bundledDependencies\": true\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := packagejson.Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if err := pkg.AddBundled(tt.add...); err != nil {
				t.Fatalf("AddBundled failed: %v", err)
			}
			got, err := pkg.Encode()
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if diff := cmp.Diff(tt.expected, string(got)); diff != "" {
				t.Errorf("Encode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodePreservesUnknownFields(t *testing.T) {
	input := `{"name":"p","exports":{"./x":"./x.js"},"scripts":{"build":"a && b < c"},"private":true}`
	pkg, err := packagejson.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got, err := pkg.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	expected := `{
  "name": "p",
  "exports": {
    "./x": "./x.js"
  },
  "scripts": {
    "build": "a && b < c"
  },
  "private": true
}
`
	if diff := cmp.Diff(expected, string(got)); diff != "" {
		t.Errorf("Encode mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeKeepsKeyOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"reverse alphabetical", `{"z":1,"m":2,"a":3}`, "{\n  \"z\": 1,\n  \"m\": 2,\n  \"a\": 3\n}\n"},
		{"repeated key keeps first position and last value", `{"a":1,"b":2,"a":3}`, "{\n  \"a\": 3,\n  \"b\": 2\n}\n"},
		{"empty object", `{}`, "{}\n"},
		{"nested objects untouched", `{"b":{"z":1,"a":2},"a":"<x>"}`, "{\n  \"b\": {\n    \"z\": 1,\n    \"a\": 2\n  },\n  \"a\": \"<x>\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := packagejson.Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			got, err := pkg.Encode()
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if diff := cmp.Diff(tt.expected, string(got)); diff != "" {
				t.Errorf("Encode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitPackageName(t *testing.T) {
	tests := []struct {
		input         string
		expectedName  string
		expectedScope string
	}{
		{"lit", "lit", ""},
		{"@lit/reactive-element", "reactive-element", "lit"},
		{"@scope/pkg", "pkg", "scope"},
		{"@invalid", "@invalid", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, scope := packagejson.SplitPackageName(tt.input)
			if name != tt.expectedName {
				t.Errorf("SplitPackageName(%q) name = %q, want %q", tt.input, name, tt.expectedName)
			}
			if scope != tt.expectedScope {
				t.Errorf("SplitPackageName(%q) scope = %q, want %q", tt.input, scope, tt.expectedScope)
			}
		})
	}
}
