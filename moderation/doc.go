/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package moderation executes the remediation flow for classified
// items.
//
// Applying labels is the only step for ordinary classifications. When
// the classification carries the Alert label and the author is not an
// organization member, the item's content is redacted, the item is
// closed (pull requests stay open so maintainers can still review),
// the conversation is locked, and the author is optionally blocked
// from the organization. Organization members are never moderated;
// that is the safety valve for classifier false positives.
//
// Every step is best-effort: a failed step is logged and the remaining
// steps still run.
package moderation
