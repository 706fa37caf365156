/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompt

import "unicode/utf8"

// Truncate caps s at limit bytes without splitting a multi-byte rune,
// so truncated remote content stays valid UTF-8 inside a prompt.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
