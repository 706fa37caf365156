/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package item normalizes the three GitHub content kinds (issues, pull
// requests, and discussions) into a single unit of work.
//
// An [Item] is parsed once per run from the webhook event payload the
// host scheduler hands us. A [Surface] then exposes one capability set
// (labels, comments, edits, close, lock, author block) over the kind's
// native API: REST for issues and pull requests, GraphQL mutations for
// discussions.
//
// # Basic Usage
//
//	it, err := item.Load(ctx, gh, cfg)
//	if err != nil { ... }
//
//	surface := item.NewSurface(gh, it)
//	if err := surface.ApplyLabels(ctx, labels); err != nil { ... }
package item
