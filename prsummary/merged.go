/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prsummary

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v75/github"
	"github.com/shurcooL/githubv4"

	"github.com/stewardhq/steward/item"
	"github.com/stewardhq/steward/llm"
	"github.com/stewardhq/steward/prompt"
)

// fixedLabel marks issues whose fix has merged.
const fixedLabel = "fixed"

// todoLabel is cleared from a PR when its work merges.
const todoLabel = "TODO"

var fixedIssueTemplate = prompt.MustNew(`Write a GitHub issue comment announcing a potential fix has been merged in linked PR {{pr_url}}

Context from PR:
{{summary}}

Include:
1. An explanation of key changes from the PR that may resolve this issue
2. Options for testing if PR changes have resolved this issue: building from the repository's default branch to try the latest changes, or awaiting the next release
3. Request feedback on whether the PR changes resolve the issue
4. Thank 🙏 for reporting the issue and welcome any further feedback if the issue persists`)

var thanksTemplate = prompt.MustNew(`Write a friendly thank you for a merged PR by these GitHub contributors: {{mentions}}. Context from PR:
{{summary}}

Start with the exciting message that this PR is now merged, and weave in an inspiring quote from a famous figure in science, philosophy or stoicism. Keep the message concise yet relevant to the specific contributions in this PR. We want the contributors to feel their effort is appreciated and will make a difference in the world.`)

// actor is an author reference with enough type information to filter
// out bots.
type actor struct {
	Login    string
	Typename string `graphql:"__typename"`
}

// FinalizeMerged runs the follow-ups for a merged pull request: label
// and notify the issues the PR fixes, clear the TODO label, and thank
// the humans involved. Every step is best-effort; a failure is logged
// and the remaining steps still run. The thank-you is skipped when the
// PR author is the automation identity itself.
func (s *Summarizer) FinalizeMerged(ctx context.Context, surface item.Surface, summary string) {
	log := clog.FromContext(ctx)
	number := surface.Item().Number

	author, contributors, err := s.notifyFixedIssues(ctx, number, summary)
	if err != nil {
		log.With("error", err).Warn("Failed to update fixed issues")
	}

	if err := surface.RemoveLabel(ctx, todoLabel); err != nil {
		log.With("error", err).Warn("Failed to remove TODO label")
	}

	identity, err := s.gh.Username(ctx)
	if err != nil {
		log.With("error", err).Warn("Failed to resolve token identity")
	}
	if author == "" || author == identity {
		return
	}
	contributors = slices.DeleteFunc(contributors, func(login string) bool { return login == identity })
	if err := s.thankContributors(ctx, surface, author, contributors, summary); err != nil {
		log.With("error", err).Warn("Failed to post thank-you comment")
	}
}

// notifyFixedIssues finds the issues this PR closes, labels each one
// fixed, and posts a comment pointing at the merged fix. It returns
// the PR author and the non-bot logins who reviewed or commented,
// deduplicated in encounter order.
func (s *Summarizer) notifyFixedIssues(ctx context.Context, number int, summary string) (author string, contributors []string, err error) {
	var query struct {
		Repository struct {
			PullRequest struct {
				URL                     string
				Author                  actor
				ClosingIssuesReferences struct {
					Nodes []struct {
						Number int
					}
				} `graphql:"closingIssuesReferences(first: 50)"`
				Reviews struct {
					Nodes []struct {
						Author actor
					}
				} `graphql:"reviews(first: 50)"`
				Comments struct {
					Nodes []struct {
						Author actor
					}
				} `graphql:"comments(first: 50)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	variables := map[string]any{
		"owner":  githubv4.String(s.gh.Owner()),
		"name":   githubv4.String(s.gh.Repo()),
		"number": githubv4.Int(number),
	}
	if err := s.gh.GraphQL().Query(ctx, &query, variables); err != nil {
		return "", nil, fmt.Errorf("fetch closing issue references for #%d: %w", number, err)
	}

	pr := query.Repository.PullRequest
	author = pr.Author.Login

	seen := map[string]bool{author: true, "": true}
	collect := func(a actor) {
		if a.Typename == "Bot" || seen[a.Login] {
			return
		}
		seen[a.Login] = true
		contributors = append(contributors, a.Login)
	}
	for _, node := range pr.Reviews.Nodes {
		collect(node.Author)
	}
	for _, node := range pr.Comments.Nodes {
		collect(node.Author)
	}

	if len(pr.ClosingIssuesReferences.Nodes) == 0 {
		return author, contributors, nil
	}

	comment, err := s.fixedIssueComment(ctx, pr.URL, summary)
	if err != nil {
		return author, contributors, fmt.Errorf("generate fixed-issue comment: %w", err)
	}
	for _, issue := range pr.ClosingIssuesReferences.Nodes {
		log := clog.FromContext(ctx).With("issue", issue.Number)
		if _, _, err := s.gh.Rest().Issues.AddLabelsToIssue(ctx, s.gh.Owner(), s.gh.Repo(), issue.Number, []string{fixedLabel}); err != nil {
			log.With("error", err).Warn("Failed to apply fixed label")
		}
		if _, _, err := s.gh.Rest().Issues.CreateComment(ctx, s.gh.Owner(), s.gh.Repo(), issue.Number, &github.IssueComment{
			Body: github.Ptr(comment),
		}); err != nil {
			log.With("error", err).Warn("Failed to comment on fixed issue")
		} else {
			log.Info("Labeled and notified fixed issue")
		}
	}
	return author, contributors, nil
}

// fixedIssueComment generates the comment posted on every issue the
// merged PR closes. One comment serves all of them.
func (s *Summarizer) fixedIssueComment(ctx context.Context, prURL, summary string) (string, error) {
	user, err := fixedIssueTemplate.
		MustBind("pr_url", prURL).
		MustBind("summary", summary).
		Build()
	if err != nil {
		return "", fmt.Errorf("build fixed-issue prompt: %w", err)
	}
	return s.completer.Complete(ctx, []llm.Message{
		llm.System("You are an AI assistant. Generate friendly GitHub issue comments. No @ mentions or direct addressing."),
		llm.User(user),
	})
}

// thankContributors posts the merge thank-you on the PR itself.
func (s *Summarizer) thankContributors(ctx context.Context, surface item.Surface, author string, contributors []string, summary string) error {
	user, err := thanksTemplate.
		MustBind("mentions", mentionList(author, contributors)).
		MustBind("summary", summary).
		Build()
	if err != nil {
		return fmt.Errorf("build thank-you prompt: %w", err)
	}
	message, err := s.completer.Complete(ctx, []llm.Message{
		llm.System("You are an AI assistant. Generate meaningful, inspiring messages to GitHub users."),
		llm.User(user),
	})
	if err != nil {
		return fmt.Errorf("thank-you completion: %w", err)
	}
	return surface.Comment(ctx, message)
}

// mentionList renders the author plus any other contributors as
// "@author and @a, @b".
func mentionList(author string, contributors []string) string {
	mentions := "@" + author
	if len(contributors) == 0 {
		return mentions
	}
	handles := make([]string, len(contributors))
	for i, login := range contributors {
		handles[i] = "@" + login
	}
	return mentions + " and " + strings.Join(handles, ", ")
}
