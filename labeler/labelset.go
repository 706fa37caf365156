/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labeler

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// LabelSet maps canonical repository label names to their
// descriptions. Name comparisons are case-insensitive; the canonical
// casing is what gets applied back to the repository.
type LabelSet map[string]string

// Canonical returns the repository casing for a name, matched
// case-insensitively after trimming whitespace.
func (s LabelSet) Canonical(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for canonical := range s {
		if strings.EqualFold(canonical, name) {
			return canonical, true
		}
	}
	return "", false
}

// Has reports whether the set contains the name, matched
// case-insensitively.
func (s LabelSet) Has(name string) bool {
	_, ok := s.Canonical(name)
	return ok
}

// Delete removes the name from the set, matched case-insensitively.
func (s LabelSet) Delete(name string) {
	for canonical := range s {
		if strings.EqualFold(canonical, name) {
			delete(s, canonical)
		}
	}
}

// Clone returns an independent copy of the set.
func (s LabelSet) Clone() LabelSet {
	return LabelSet(maps.Clone(map[string]string(s)))
}

// Lines renders the set as "- name: description" lines, sorted by name
// so prompts are deterministic.
func (s LabelSet) Lines() string {
	names := slices.Sorted(maps.Keys(s))
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("- %s: %s", name, s[name]))
	}
	return strings.Join(lines, "\n")
}
