/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package labeler classifies issues, pull requests, and discussions
// against the repository's label set using a language model.
//
// The model is offered a filtered candidate set: human-only labels are
// withheld, mutually exclusive pairs are resolved against the labels
// already on the item, and a synthetic "Alert" label is always present
// so the model can flag spam or abuse even in repositories that never
// created one. The model's comma-separated reply is validated
// case-insensitively against the candidates; anything else it says is
// dropped rather than treated as an error.
package labeler
