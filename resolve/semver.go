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
package resolve

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SemverResolver matches npm-style ranges (^, ~, x-ranges, ||, hyphen
// ranges) in process.
type SemverResolver struct {
	logger Logger
}

// NewSemverResolver creates a new in-process resolver. logger may be nil.
func NewSemverResolver(logger Logger) *SemverResolver {
	return &SemverResolver{logger: logger}
}

// Resolve returns the highest candidate satisfying constraint. Candidates
// that are not full major.minor.patch versions are skipped; a single
// leading "v" is allowed, as semver.js allows it. The returned string is the
// candidate exactly as given, so it can be mapped back to a filename.
func (r *SemverResolver) Resolve(constraint string, candidates []string) (string, error) {
	c, err := semver.NewConstraint(normalizeConstraint(constraint))
	if err != nil {
		return "", fmt.Errorf("invalid constraint %q: %w", constraint, err)
	}

	var best *semver.Version
	var bestRaw string
	for _, candidate := range candidates {
		v, err := semver.StrictNewVersion(strings.TrimPrefix(candidate, "v"))
		if err != nil {
			if r.logger != nil {
				r.logger.Debug("Skipping cached version %q: %v", candidate, err)
			}
			continue
		}
		if !c.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestRaw = v, candidate
		}
	}

	if best == nil {
		return "", fmt.Errorf("%w %q (available: %s)", ErrNoMatch, constraint, strings.Join(candidates, ", "))
	}
	return bestRaw, nil
}

// normalizeConstraint maps the npm spellings of "any version" onto a
// constraint the semver library accepts.
func normalizeConstraint(constraint string) string {
	constraint = strings.TrimSpace(constraint)
	switch constraint {
	case "", "latest", "x", "X":
		return "*"
	}
	return constraint
}
