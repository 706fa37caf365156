/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package prsummary generates and maintains the summary block in a
// pull request description. The block always starts with
// SummaryMarker; everything from the marker onward is owned by the
// summarizer and rewritten on every run, so edits above the marker
// survive and stale summaries never accumulate.
//
// When a pull request merges the summarizer also runs the follow-ups:
// it labels and notifies the issues the PR closes, clears the TODO
// label, and posts a thank-you comment mentioning the humans who
// authored, reviewed, or discussed the change.
package prsummary
