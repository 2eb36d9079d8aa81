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
// Package logging builds the CLI logger and adapts it to resolve.Logger.
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to w at the named level
// (debug, info, warn, error).
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.WarnLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "localdeps",
		Level:  lvl,
	}), nil
}

// Adapter exposes a charm logger through the Warning/Debug interface the
// library packages accept.
type Adapter struct {
	logger *log.Logger
}

// Adapt wraps logger.
func Adapt(logger *log.Logger) *Adapter {
	return &Adapter{logger: logger}
}

func (a *Adapter) Warning(format string, args ...any) {
	a.logger.Warnf(format, args...)
}

func (a *Adapter) Debug(format string, args ...any) {
	a.logger.Debugf(format, args...)
}
