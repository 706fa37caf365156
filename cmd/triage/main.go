/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the triage pipeline for a single webhook
// event: classify the item against the repository's labels, run the
// moderation steps the classification calls for, and welcome new
// issues, pull requests, and discussions.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"github.com/stewardhq/steward/githubapi"
	"github.com/stewardhq/steward/item"
	"github.com/stewardhq/steward/labeler"
	"github.com/stewardhq/steward/llm"
	"github.com/stewardhq/steward/moderation"
	"github.com/stewardhq/steward/welcome"
)

type config struct {
	GitHub     githubapi.Config
	LLM        llm.Config
	Event      item.Config
	Moderation moderation.Config
	Welcome    welcome.Config
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	gh, err := githubapi.New(ctx, cfg.GitHub)
	if err != nil {
		clog.FatalContextf(ctx, "creating GitHub client: %v", err)
	}
	completer, err := llm.New(cfg.LLM)
	if err != nil {
		clog.FatalContextf(ctx, "creating completion client: %v", err)
	}

	it, err := item.Load(ctx, gh, cfg.Event)
	if err != nil {
		clog.FatalContextf(ctx, "loading event: %v", err)
	}
	surface := item.NewSurface(gh, it)
	clog.InfoContextf(ctx, "Triaging %s #%d by %s", it.Kind, it.Number, it.Author)

	available, err := gh.Labels(ctx)
	if err != nil {
		clog.FatalContextf(ctx, "fetching repository labels: %v", err)
	}
	current, err := surface.CurrentLabels(ctx)
	if err != nil {
		clog.FatalContextf(ctx, "fetching current labels: %v", err)
	}

	labels, err := labeler.New(completer).Classify(ctx, it, labeler.LabelSet(available), current)
	if err != nil {
		clog.FatalContextf(ctx, "classifying: %v", err)
	}

	decision := moderation.New(gh, cfg.Moderation).Moderate(ctx, surface, labels)
	clog.InfoContextf(ctx, "Applied %d labels (alert=%t, member=%t)",
		len(decision.Labels), decision.IsAlert, decision.AuthorIsMember)

	// The welcome runs regardless of the moderation outcome; Respond
	// skips everything but opening actions on its own.
	welcomer, err := welcome.New(gh, completer, cfg.Welcome)
	if err != nil {
		clog.FatalContextf(ctx, "loading welcome templates: %v", err)
	}
	if err := welcomer.Respond(ctx, surface); err != nil {
		clog.FatalContextf(ctx, "welcoming #%d: %v", it.Number, err)
	}
}
