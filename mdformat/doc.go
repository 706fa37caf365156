/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package mdformat rewrites fenced Go code samples in markdown files.
//
// Documents are scanned for go-tagged code fences, including fences
// indented inside list items. Each sample has the fence indentation
// stripped, runs through gofmt, and is reinserted with the indentation
// restored. Samples that do not parse as Go are left untouched so
// pseudo-code and abbreviated snippets survive. When run inside a git
// repository the file set comes from the index; outside one the
// directory tree is walked for *.md files.
package mdformat
