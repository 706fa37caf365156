/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prsummary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v75/github"
	"github.com/waigani/diffparser"

	"github.com/stewardhq/steward/githubapi"
	"github.com/stewardhq/steward/item"
	"github.com/stewardhq/steward/llm"
	"github.com/stewardhq/steward/prompt"
	"github.com/stewardhq/steward/retrywait"
)

// SummaryMarker opens the generated block in a PR description. Text
// from the marker onward belongs to the summarizer and is replaced on
// every run.
const SummaryMarker = "## 🛠️ PR Summary"

// summaryHeader is the full block opening: the marker plus the
// attribution line every generated summary carries.
const summaryHeader = SummaryMarker + "\n\n<sub>Made with ❤️ by [Steward](https://github.com/stewardhq/steward)</sub>\n\n"

// promptCharBudget caps the diff text embedded in the summary prompt:
// half of a 128k-token context at roughly 3.3 characters per token.
const promptCharBudget int = 128000 * 3.3 * 0.5

// emptyDiffNotice stands in for the diff when the PR has no changes,
// so the model reports the problem instead of inventing a summary.
const emptyDiffNotice = "**ERROR: DIFF IS EMPTY, THERE ARE ZERO CODE CHANGES IN THIS PR.**"

// oversizeWarning prefixes summaries generated from a truncated diff.
const oversizeWarning = "**WARNING ⚠️** this PR is very large, summary may not cover all changes.\n\n"

var summaryTemplate = prompt.MustNew(`Summarize this '{{repository}}' PR, focusing on major changes, their purpose, and potential impact. Keep the summary clear and concise, suitable for a broad audience. Add emojis to enliven the summary. Reply directly with a summary along these example guidelines, though feel free to adjust as appropriate:

### 🌟 Summary (single-line synopsis)
### 📊 Key Changes (bullet points highlighting any major changes)
### 🎯 Purpose & Impact (bullet points explaining any benefits and potential impact to users)

{{stats_section}}Here's the PR diff:

{{diff}}`)

// Config tunes the description update loop.
type Config struct {
	// DescriptionRetries is how many times the description fetch is
	// retried while the PR body comes back empty.
	DescriptionRetries int `env:"SUMMARY_DESCRIPTION_RETRIES,default=2"`

	// DescriptionRetryDelay is the pause between description fetches.
	DescriptionRetryDelay time.Duration `env:"SUMMARY_DESCRIPTION_RETRY_DELAY,default=1s"`
}

// Summarizer drives the pull request summary flow.
type Summarizer struct {
	gh         *githubapi.Client
	completer  llm.Completer
	retries    int
	retryDelay time.Duration
}

// New returns a Summarizer backed by the given clients.
func New(gh *githubapi.Client, completer llm.Completer, cfg Config) *Summarizer {
	return &Summarizer{
		gh:         gh,
		completer:  completer,
		retries:    cfg.DescriptionRetries,
		retryDelay: cfg.DescriptionRetryDelay,
	}
}

// Run executes the summary flow for a pull request surface: fetch the
// diff, generate the block, update the description, and on merged PRs
// run the merge follow-ups. A diff fetch failure degrades to an empty
// diff rather than aborting the run.
func (s *Summarizer) Run(ctx context.Context, surface item.Surface) error {
	it := surface.Item()
	log := clog.FromContext(ctx).With("pr", it.Number)

	log.Info("Retrieving PR diff")
	diff, err := s.gh.RawPRDiff(ctx, it.Number)
	if err != nil {
		log.With("error", err).Warn("Failed to fetch PR diff, summarizing without it")
		diff = ""
	}

	log.Info("Generating PR summary")
	summary, err := s.Generate(ctx, diff)
	if err != nil {
		return fmt.Errorf("generate summary for #%d: %w", it.Number, err)
	}

	log.Info("Updating PR description")
	if err := s.UpdateDescription(ctx, it.Number, summary); err != nil {
		return err
	}

	if it.Merged {
		log.Info("PR is merged, running merge follow-ups")
		s.FinalizeMerged(ctx, surface, summary)
	}
	return nil
}

// Generate produces the full summary block for a diff. The block
// always opens with summaryHeader; when the diff exceeds the prompt
// budget the model's reply is prefixed with a warning banner.
func (s *Summarizer) Generate(ctx context.Context, diff string) (string, error) {
	truncated := len(diff) > promptCharBudget
	if diff == "" {
		diff = emptyDiffNotice
	}

	statsSection := ""
	if stats := diffStats(diff); stats != "" {
		statsSection = "PR diff stats: " + stats + "\n\n"
	}

	user, err := summaryTemplate.
		MustBind("repository", s.gh.Owner()+"/"+s.gh.Repo()).
		MustBind("stats_section", statsSection).
		MustBind("diff", prompt.Truncate(diff, promptCharBudget)).
		Build()
	if err != nil {
		return "", fmt.Errorf("build summary prompt: %w", err)
	}

	reply, err := s.completer.Complete(ctx, []llm.Message{
		llm.System("You are an AI assistant skilled in software development and technical communication. Your task is to summarize GitHub PRs in a way that is accurate, concise, and understandable to both expert developers and non-expert users. Focus on highlighting the key changes and their impact in simple, concise terms."),
		llm.User(user),
	})
	if err != nil {
		return "", fmt.Errorf("summary completion: %w", err)
	}

	if truncated {
		reply = oversizeWarning + reply
	}
	return summaryHeader + reply, nil
}

// diffStats renders a one-line shape of the diff for the prompt. A
// diff that does not parse yields no stats; the raw text still goes to
// the model.
func diffStats(diff string) string {
	parsed, err := diffparser.Parse(diff)
	if err != nil || parsed == nil || len(parsed.Files) == 0 {
		return ""
	}
	var added, removed int
	for _, file := range parsed.Files {
		for _, hunk := range file.Hunks {
			for _, line := range hunk.WholeRange.Lines {
				switch line.Mode {
				case diffparser.ADDED:
					added++
				case diffparser.REMOVED:
					removed++
				}
			}
		}
	}
	return fmt.Sprintf("%d changed files, +%d/-%d lines", len(parsed.Files), added, removed)
}

// Merge splices summary into an existing description. Text from a
// previous SummaryMarker onward is replaced; otherwise the summary is
// appended after a blank line.
func Merge(description, summary string) string {
	if idx := strings.Index(description, SummaryMarker); idx >= 0 {
		return description[:idx] + summary
	}
	return description + "\n\n" + summary
}

var errEmptyDescription = errors.New("pull request description is empty")

// UpdateDescription writes summary into the PR description. The fetch
// is retried while the body comes back empty, covering the window
// where a just-opened PR's body has not materialized yet; when retries
// run out the summary is written to an empty description.
func (s *Summarizer) UpdateDescription(ctx context.Context, number int, summary string) error {
	description, err := retrywait.Do(ctx, retrywait.Fixed(s.retries, s.retryDelay), "fetch PR description", nil,
		func() (string, error) {
			pr, _, err := s.gh.Rest().PullRequests.Get(ctx, s.gh.Owner(), s.gh.Repo(), number)
			if err != nil {
				return "", err
			}
			if pr.GetBody() == "" {
				return "", errEmptyDescription
			}
			return pr.GetBody(), nil
		})
	if err != nil {
		clog.FromContext(ctx).With("pr", number, "error", err).
			Info("No PR description available, writing summary alone")
		description = ""
	}

	body := Merge(description, summary)
	if _, _, err := s.gh.Rest().PullRequests.Edit(ctx, s.gh.Owner(), s.gh.Repo(), number, &github.PullRequest{
		Body: github.Ptr(body),
	}); err != nil {
		return fmt.Errorf("update description of #%d: %w", number, err)
	}
	return nil
}
