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
// Package resolve selects, for each declared dependency, the cached version
// that satisfies its constraint.
package resolve

import (
	"errors"
	"fmt"
)

// Resolver picks the best candidate version for a constraint.
type Resolver interface {
	// Resolve returns the element of candidates that best satisfies
	// constraint, or an error wrapping ErrNoMatch.
	Resolve(constraint string, candidates []string) (string, error)
}

// Logger is an interface for logging messages during resolution.
type Logger interface {
	Warning(format string, args ...any)
	Debug(format string, args ...any)
}

// ErrNoMatch is returned when no candidate satisfies a constraint.
var ErrNoMatch = errors.New("no cached version satisfies constraint")

// ResolutionError reports a dependency that cannot be satisfied from the cache.
// It is fatal for the whole resolution request.
type ResolutionError struct {
	Dependency string
	Constraint string
	Err        error
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("could not resolve dependency '%s (%s)'", e.Dependency, e.Constraint)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
