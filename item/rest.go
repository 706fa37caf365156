/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package item

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/stewardhq/steward/githubapi"
)

// restSurface backs issues and pull requests. Both share the issues
// REST endpoints for labels, comments, edits, close, and lock.
type restSurface struct {
	gh   *githubapi.Client
	item *Item
}

var _ Surface = (*restSurface)(nil)

func (s *restSurface) Item() *Item { return s.item }

func (s *restSurface) CurrentLabels(ctx context.Context) ([]string, error) {
	var names []string
	opts := &github.ListOptions{PerPage: 100}
	for {
		labels, resp, err := s.gh.Rest().Issues.ListLabelsByIssue(ctx, s.gh.Owner(), s.gh.Repo(), s.item.Number, opts)
		if err != nil {
			return nil, fmt.Errorf("list labels on #%d: %w", s.item.Number, err)
		}
		for _, label := range labels {
			names = append(names, label.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}

func (s *restSurface) ApplyLabels(ctx context.Context, labels []string) error {
	if _, _, err := s.gh.Rest().Issues.AddLabelsToIssue(ctx, s.gh.Owner(), s.gh.Repo(), s.item.Number, labels); err != nil {
		return fmt.Errorf("apply labels %q to #%d: %w", strings.Join(labels, ", "), s.item.Number, err)
	}
	return nil
}

func (s *restSurface) RemoveLabel(ctx context.Context, label string) error {
	if _, err := s.gh.Rest().Issues.RemoveLabelForIssue(ctx, s.gh.Owner(), s.gh.Repo(), s.item.Number, label); err != nil {
		return fmt.Errorf("remove label %q from #%d: %w", label, s.item.Number, err)
	}
	return nil
}

func (s *restSurface) Comment(ctx context.Context, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}
	if _, _, err := s.gh.Rest().Issues.CreateComment(ctx, s.gh.Owner(), s.gh.Repo(), s.item.Number, comment); err != nil {
		return fmt.Errorf("comment on #%d: %w", s.item.Number, err)
	}
	return nil
}

func (s *restSurface) Edit(ctx context.Context, title, body string) error {
	req := &github.IssueRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
	}
	if _, _, err := s.gh.Rest().Issues.Edit(ctx, s.gh.Owner(), s.gh.Repo(), s.item.Number, req); err != nil {
		return fmt.Errorf("edit #%d: %w", s.item.Number, err)
	}
	return nil
}

func (s *restSurface) Close(ctx context.Context) error {
	req := &github.IssueRequest{State: github.Ptr("closed")}
	if _, _, err := s.gh.Rest().Issues.Edit(ctx, s.gh.Owner(), s.gh.Repo(), s.item.Number, req); err != nil {
		return fmt.Errorf("close #%d: %w", s.item.Number, err)
	}
	return nil
}

func (s *restSurface) Lock(ctx context.Context) error {
	opts := &github.LockIssueOptions{LockReason: "off-topic"}
	if _, err := s.gh.Rest().Issues.Lock(ctx, s.gh.Owner(), s.gh.Repo(), s.item.Number, opts); err != nil {
		return fmt.Errorf("lock #%d: %w", s.item.Number, err)
	}
	return nil
}

func (s *restSurface) BlockAuthor(ctx context.Context) error {
	return s.gh.BlockUser(ctx, s.item.Author)
}
