/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package item

import (
	"context"

	"github.com/stewardhq/steward/githubapi"
)

// Surface is the capability set shared by all content kinds. Every
// method reports failure through its error; callers moderating an item
// log the error and continue with the remaining steps rather than
// aborting the run.
type Surface interface {
	// Item returns the item this surface operates on.
	Item() *Item

	// CurrentLabels returns the canonical names of labels already on
	// the item. Discussions have no label read path and always report
	// an empty set without a network call.
	CurrentLabels(ctx context.Context) ([]string, error)

	// ApplyLabels adds the given labels to the item.
	ApplyLabels(ctx context.Context, labels []string) error

	// RemoveLabel removes a single label from the item.
	RemoveLabel(ctx context.Context, label string) error

	// Comment posts a new comment on the item.
	Comment(ctx context.Context, body string) error

	// Edit replaces the item's title and body.
	Edit(ctx context.Context, title, body string) error

	// Close closes the item.
	Close(ctx context.Context) error

	// Lock locks the item's conversation with reason off-topic.
	Lock(ctx context.Context) error

	// BlockAuthor blocks the item's author from the organization.
	BlockAuthor(ctx context.Context) error
}

// NewSurface selects the API branch for the item's kind: GraphQL for
// discussions, REST for issues and pull requests.
func NewSurface(gh *githubapi.Client, it *Item) Surface {
	if it.Kind == KindDiscussion {
		return &discussionSurface{gh: gh, item: it}
	}
	return &restSurface{gh: gh, item: it}
}
