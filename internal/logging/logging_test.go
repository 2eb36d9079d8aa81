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
package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"bennypowers.dev/localdeps/internal/logging"
	"bennypowers.dev/localdeps/resolve"
)

func TestAdapterLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, "warn")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var l resolve.Logger = logging.Adapt(logger)
	l.Debug("hidden %s", "debug")
	l.Warning("shown %s", "warning")

	out := buf.String()
	if strings.Contains(out, "hidden debug") {
		t.Errorf("debug message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown warning") {
		t.Errorf("warning message missing: %q", out)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := logging.New(&bytes.Buffer{}, "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
