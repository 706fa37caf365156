/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package welcome posts a model-generated first response on freshly
// opened issues and pull requests and freshly created discussions.
//
// The model is shown an example response (a built-in default, an
// environment override, or an entry from a YAML template file) and the
// item's title and body; pull requests additionally embed a bounded
// slice of the unified diff. Whatever the model returns is posted
// verbatim as a comment.
package welcome
