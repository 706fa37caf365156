/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package welcome

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chainguard-dev/clog"
	"github.com/stewardhq/steward/githubapi"
	"github.com/stewardhq/steward/item"
	"github.com/stewardhq/steward/llm"
	"github.com/stewardhq/steward/prompt"
)

const (
	// maxBodyChars bounds how much of the item body reaches the prompt.
	maxBodyChars = 16000

	// maxDiffChars bounds how much of a PR's unified diff reaches the
	// prompt.
	maxDiffChars = 32000
)

var welcomeTemplate = prompt.MustNew(`Generate a customized response to the new GitHub {{kind}} below:

CONTEXT:
- Repository: {{repo}}
- Organization: {{org}}
- Repository URL: {{repo_url}}
- User: {{user}}

INSTRUCTIONS:
- Provide a detailed, optimal answer if a bug report or question, using code examples if helpful
- Provide highly detailed best-practices guidelines for {{kind}} submission
- INCLUDE ALL LINKS AND INSTRUCTIONS IN THE EXAMPLE BELOW, customized as appropriate
- In your response mention to the user that this is an automated response and that a maintainer will also assist soon
- Do not add a sign-off or valediction like "best regards" at the end of your response
- Do not add spaces between bullet points or numbered lists
- Only link to files or URLs in the example below, do not add external links
- Use a few emojis to enliven your response

EXAMPLE:
{{example}}

{{kind_upper}} TITLE:
{{title}}

{{kind_upper}} DESCRIPTION:
{{body}}

{{diff_section}}
YOUR RESPONSE:
`)

// Config holds the welcome-response overrides.
type Config struct {
	// FirstIssueResponse replaces the example shown to the model for
	// issues and discussions.
	FirstIssueResponse string `env:"FIRST_ISSUE_RESPONSE"`

	// FirstPRResponse replaces the example shown to the model for pull
	// requests.
	FirstPRResponse string `env:"FIRST_PR_RESPONSE"`

	// TemplateFile names a YAML file with first_issue_response and
	// first_pr_response entries. Explicit environment values win over
	// file entries.
	TemplateFile string `env:"WELCOME_TEMPLATE_FILE"`
}

// Client is the slice of the GitHub API the generator needs.
type Client interface {
	Owner() string
	Repo() string

	// RawPRDiff returns the unified diff of a pull request.
	RawPRDiff(ctx context.Context, number int) (string, error)
}

var _ Client = (*githubapi.Client)(nil)

// Generator produces first-interaction responses.
type Generator struct {
	gh           Client
	completer    llm.Completer
	issueExample string
	prExample    string
}

// New returns a Generator, loading any configured template overrides.
func New(gh Client, completer llm.Completer, cfg Config) (*Generator, error) {
	issue, pr, err := resolveOverrides(cfg)
	if err != nil {
		return nil, err
	}
	return &Generator{
		gh:           gh,
		completer:    completer,
		issueExample: issue,
		prExample:    pr,
	}, nil
}

// ShouldRespond reports whether the triggering action warrants a
// welcome: only freshly opened issues/PRs and freshly created
// discussions get one.
func ShouldRespond(it *item.Item) bool {
	return it.Action == "opened" || it.Action == "created"
}

// Respond posts a welcome comment when the triggering action is an
// opening action, and does nothing otherwise.
func (g *Generator) Respond(ctx context.Context, surface item.Surface) error {
	it := surface.Item()
	if !ShouldRespond(it) {
		clog.FromContext(ctx).With("action", it.Action).Info("Not an opening action, skipping welcome")
		return nil
	}

	reply, err := g.Generate(ctx, it)
	if err != nil {
		return fmt.Errorf("generate welcome: %w", err)
	}
	if err := surface.Comment(ctx, reply); err != nil {
		return fmt.Errorf("post welcome: %w", err)
	}
	return nil
}

// Generate returns the model's response for the item, verbatim.
func (g *Generator) Generate(ctx context.Context, it *item.Item) (string, error) {
	example, err := g.exampleFor(it)
	if err != nil {
		return "", fmt.Errorf("resolve welcome example: %w", err)
	}

	diffSection := ""
	if it.Kind == item.KindPullRequest {
		diff, err := g.gh.RawPRDiff(ctx, it.Number)
		if err != nil {
			// The diff enriches the response but is not essential.
			clog.FromContext(ctx).With("error", err).Warn("Failed to fetch PR diff for welcome")
		}
		diffSection = "PULL REQUEST DIFF:\n" + prompt.Truncate(diff, maxDiffChars) + "\n"
	}

	org := g.gh.Owner()
	text, err := welcomeTemplate.
		MustBind("kind", string(it.Kind)).
		MustBind("kind_upper", strings.ToUpper(string(it.Kind))).
		MustBind("repo", g.gh.Repo()).
		MustBind("org", org).
		MustBind("repo_url", fmt.Sprintf("https://github.com/%s/%s", org, g.gh.Repo())).
		MustBind("user", it.Author).
		MustBind("example", example).
		MustBind("title", it.Title).
		MustBind("body", prompt.Truncate(it.Body, maxBodyChars)).
		MustBind("diff_section", diffSection).
		Build()
	if err != nil {
		return "", fmt.Errorf("build welcome prompt: %w", err)
	}

	system := fmt.Sprintf("You are a helpful assistant responding to GitHub %ss for the %s organization.", it.Kind, org)
	reply, err := g.completer.Complete(ctx, []llm.Message{llm.System(system), llm.User(text)})
	if err != nil {
		return "", fmt.Errorf("welcome completion: %w", err)
	}
	return reply, nil
}

// exampleFor picks the example response for the item's kind: the
// configured override verbatim, or the built-in default with the
// author and repository substituted.
func (g *Generator) exampleFor(it *item.Item) (string, error) {
	slug := g.gh.Owner() + "/" + g.gh.Repo()
	if it.Kind == item.KindPullRequest {
		if g.prExample != "" {
			return g.prExample, nil
		}
		return defaultPRExample.
			MustBind("user", it.Author).
			MustBind("repository", slug).
			Build()
	}
	if g.issueExample != "" {
		return g.issueExample, nil
	}
	return defaultIssueExample.
		MustBind("user", it.Author).
		MustBind("repository", slug).
		MustBind("kind", string(it.Kind)).
		MustBind("kind_title", capitalize(string(it.Kind))).
		Build()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
