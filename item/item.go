/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package item

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/stewardhq/steward/githubapi"
)

// Kind identifies which content kind an item is. It is fixed at parse
// time and selects the API branch (REST or GraphQL) every subsequent
// operation on the item uses.
type Kind string

const (
	KindIssue       Kind = "issue"
	KindPullRequest Kind = "pull request"
	KindDiscussion  Kind = "discussion"
)

// Item is the normalized unit of work extracted from a webhook event.
// It is built once per run and never persisted.
type Item struct {
	// Number is the repo-scoped issue/PR/discussion number.
	Number int

	// NodeID is the opaque global identifier. Captured eagerly:
	// GraphQL mutations on discussions have no number-based path.
	NodeID string

	Title string

	// Body has HTML comment blocks stripped and is space-trimmed.
	Body string

	// Author is the login of the user who created the item.
	Author string

	Kind Kind

	// Action is the webhook action that triggered the run, e.g.
	// "opened" for issues/PRs or "created" for discussions.
	Action string

	// Merged is set for pull requests that have been merged.
	Merged bool
}

// Config locates the webhook event to process.
type Config struct {
	EventName string `env:"GITHUB_EVENT_NAME,required"`
	EventPath string `env:"GITHUB_EVENT_PATH,required"`
}

// htmlComments matches HTML comment blocks, including multi-line ones.
var htmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)

// stripHTMLComments removes HTML comment blocks so hidden template
// boilerplate never reaches a prompt.
func stripHTMLComments(body string) string {
	return strings.TrimSpace(htmlComments.ReplaceAllString(body, ""))
}

// Load reads the event payload from cfg.EventPath and parses it.
func Load(ctx context.Context, gh *githubapi.Client, cfg Config) (*Item, error) {
	payload, err := os.ReadFile(cfg.EventPath)
	if err != nil {
		return nil, fmt.Errorf("read event payload: %w", err)
	}
	return Parse(ctx, gh, cfg.EventName, payload)
}

// envelopeItem is the subset of the event sub-object we consume. The
// same shape covers issues, pull requests, and discussions.
type envelopeItem struct {
	Number int    `json:"number"`
	NodeID string `json:"node_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	User   struct {
		Login string `json:"login"`
	} `json:"user"`
}

// Parse dispatches on the event name to extract the item from the
// matching payload sub-object. Pull requests are re-fetched so the run
// sees the latest title and body rather than the snapshot in the
// event. Unrecognized event names are a configuration error.
func Parse(ctx context.Context, gh *githubapi.Client, eventName string, payload []byte) (*Item, error) {
	var envelope struct {
		Action      string        `json:"action"`
		Issue       *envelopeItem `json:"issue"`
		PullRequest *envelopeItem `json:"pull_request"`
		Discussion  *envelopeItem `json:"discussion"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal event payload: %w", err)
	}

	var src *envelopeItem
	var kind Kind
	var merged bool
	switch eventName {
	case "issues":
		src, kind = envelope.Issue, KindIssue

	case "pull_request", "pull_request_target":
		if envelope.PullRequest == nil {
			return nil, fmt.Errorf("event %q has no pull_request object", eventName)
		}
		pr, _, err := gh.Rest().PullRequests.Get(ctx, gh.Owner(), gh.Repo(), envelope.PullRequest.Number)
		if err != nil {
			return nil, fmt.Errorf("fetch pull request #%d: %w", envelope.PullRequest.Number, err)
		}
		src = &envelopeItem{
			Number: pr.GetNumber(),
			NodeID: pr.GetNodeID(),
			Title:  pr.GetTitle(),
			Body:   pr.GetBody(),
		}
		src.User.Login = pr.GetUser().GetLogin()
		kind = KindPullRequest
		merged = pr.GetMerged()

	case "discussion":
		src, kind = envelope.Discussion, KindDiscussion

	default:
		return nil, fmt.Errorf("unsupported event type: %q", eventName)
	}
	if src == nil {
		return nil, fmt.Errorf("event %q has no %s object", eventName, kind)
	}

	it := &Item{
		Number: src.Number,
		NodeID: src.NodeID,
		Title:  src.Title,
		Body:   stripHTMLComments(src.Body),
		Author: src.User.Login,
		Kind:   kind,
		Action: envelope.Action,
		Merged: merged,
	}
	clog.FromContext(ctx).
		With("kind", it.Kind, "number", it.Number, "node_id", it.NodeID, "action", it.Action).
		Info("Parsed event item")
	return it, nil
}
