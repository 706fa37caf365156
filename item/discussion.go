/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package item

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/shurcooL/githubv4"
	"github.com/stewardhq/steward/githubapi"
)

// discussionSurface backs discussions. Discussions have no REST write
// path, so every capability is a GraphQL mutation keyed on the
// discussion's node ID.
type discussionSurface struct {
	gh   *githubapi.Client
	item *Item
}

var _ Surface = (*discussionSurface)(nil)

func (s *discussionSurface) Item() *Item { return s.item }

// CurrentLabels reports an empty set: there is no label read path for
// discussions, and the classifier treats them as unlabeled.
func (s *discussionSurface) CurrentLabels(_ context.Context) ([]string, error) {
	return nil, nil
}

// labelableID builds the composite identifier the label mutations
// expect for discussions.
func labelableID(nodeID string) githubv4.ID {
	return githubv4.ID(base64.StdEncoding.EncodeToString([]byte("Discussion:" + nodeID)))
}

// resolveLabelIDs maps label names to their repository label node IDs,
// paging through the full label set. Names with no matching label are
// logged and skipped.
func (s *discussionSurface) resolveLabelIDs(ctx context.Context, labels []string) ([]githubv4.ID, error) {
	var query struct {
		Repository struct {
			Labels struct {
				Nodes []struct {
					ID   githubv4.ID
					Name string
				}
				PageInfo struct {
					EndCursor   githubv4.String
					HasNextPage bool
				}
			} `graphql:"labels(first: 100, after: $cursor)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	variables := map[string]any{
		"owner":  githubv4.String(s.gh.Owner()),
		"name":   githubv4.String(s.gh.Repo()),
		"cursor": (*githubv4.String)(nil),
	}

	byName := map[string]githubv4.ID{}
	for {
		if err := s.gh.GraphQL().Query(ctx, &query, variables); err != nil {
			return nil, fmt.Errorf("list repository labels: %w", err)
		}
		for _, node := range query.Repository.Labels.Nodes {
			byName[strings.ToLower(node.Name)] = node.ID
		}
		if !query.Repository.Labels.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(query.Repository.Labels.PageInfo.EndCursor)
	}

	ids := make([]githubv4.ID, 0, len(labels))
	for _, label := range labels {
		id, ok := byName[strings.ToLower(label)]
		if !ok {
			clog.FromContext(ctx).With("label", label).Warn("Label has no node ID, skipping")
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *discussionSurface) ApplyLabels(ctx context.Context, labels []string) error {
	ids, err := s.resolveLabelIDs(ctx, labels)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		clog.FromContext(ctx).Info("No label node IDs resolved, nothing to apply")
		return nil
	}

	var m struct {
		AddLabelsToLabelable struct {
			Labelable struct {
				Discussion struct {
					ID githubv4.ID
				} `graphql:"... on Discussion"`
			}
		} `graphql:"addLabelsToLabelable(input: $input)"`
	}
	input := githubv4.AddLabelsToLabelableInput{
		LabelableID: labelableID(s.item.NodeID),
		LabelIDs:    ids,
	}
	if err := s.gh.GraphQL().Mutate(ctx, &m, input, nil); err != nil {
		return fmt.Errorf("add labels %q to discussion: %w", strings.Join(labels, ", "), err)
	}
	return nil
}

func (s *discussionSurface) RemoveLabel(ctx context.Context, label string) error {
	ids, err := s.resolveLabelIDs(ctx, []string{label})
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	var m struct {
		RemoveLabelsFromLabelable struct {
			ClientMutationID githubv4.String
		} `graphql:"removeLabelsFromLabelable(input: $input)"`
	}
	input := githubv4.RemoveLabelsFromLabelableInput{
		LabelableID: labelableID(s.item.NodeID),
		LabelIDs:    ids,
	}
	if err := s.gh.GraphQL().Mutate(ctx, &m, input, nil); err != nil {
		return fmt.Errorf("remove label %q from discussion: %w", label, err)
	}
	return nil
}

func (s *discussionSurface) Comment(ctx context.Context, body string) error {
	var m struct {
		AddDiscussionComment struct {
			Comment struct {
				ID githubv4.ID
			}
		} `graphql:"addDiscussionComment(input: $input)"`
	}
	input := githubv4.AddDiscussionCommentInput{
		DiscussionID: githubv4.ID(s.item.NodeID),
		Body:         githubv4.String(body),
	}
	if err := s.gh.GraphQL().Mutate(ctx, &m, input, nil); err != nil {
		return fmt.Errorf("comment on discussion: %w", err)
	}
	return nil
}

func (s *discussionSurface) Edit(ctx context.Context, title, body string) error {
	var m struct {
		UpdateDiscussion struct {
			Discussion struct {
				ID githubv4.ID
			}
		} `graphql:"updateDiscussion(input: $input)"`
	}
	input := githubv4.UpdateDiscussionInput{
		DiscussionID: githubv4.ID(s.item.NodeID),
		Title:        githubv4.NewString(githubv4.String(title)),
		Body:         githubv4.NewString(githubv4.String(body)),
	}
	if err := s.gh.GraphQL().Mutate(ctx, &m, input, nil); err != nil {
		return fmt.Errorf("edit discussion: %w", err)
	}
	return nil
}

func (s *discussionSurface) Close(ctx context.Context) error {
	var m struct {
		CloseDiscussion struct {
			Discussion struct {
				ID githubv4.ID
			}
		} `graphql:"closeDiscussion(input: $input)"`
	}
	input := githubv4.CloseDiscussionInput{
		DiscussionID: githubv4.ID(s.item.NodeID),
	}
	if err := s.gh.GraphQL().Mutate(ctx, &m, input, nil); err != nil {
		return fmt.Errorf("close discussion: %w", err)
	}
	return nil
}

func (s *discussionSurface) Lock(ctx context.Context) error {
	var m struct {
		LockLockable struct {
			LockedRecord struct {
				Locked githubv4.Boolean
			}
		} `graphql:"lockLockable(input: $input)"`
	}
	reason := githubv4.LockReasonOffTopic
	input := githubv4.LockLockableInput{
		LockableID: githubv4.ID(s.item.NodeID),
		LockReason: &reason,
	}
	if err := s.gh.GraphQL().Mutate(ctx, &m, input, nil); err != nil {
		return fmt.Errorf("lock discussion: %w", err)
	}
	return nil
}

func (s *discussionSurface) BlockAuthor(ctx context.Context) error {
	return s.gh.BlockUser(ctx, s.item.Author)
}
